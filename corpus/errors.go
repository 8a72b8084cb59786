package corpus

import "errors"

var (
	// ErrRootRequired is returned when the corpus root directory is not provided.
	ErrRootRequired = errors.New("corpus root directory required")

	// ErrDocumentTooSmall is returned when a page has too little content to index.
	ErrDocumentTooSmall = errors.New("document below minimum size")
)
