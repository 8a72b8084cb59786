package corpus

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poiesic/docsift/core"
)

// minDocumentBytes is the smallest trimmed page size worth indexing.
// Anything shorter is navigation stubs and redirect pages.
const minDocumentBytes = 50

// fallbackService is assigned to pages sitting at the corpus root,
// outside any service partition.
const fallbackService = "general"

// sidecar is the optional per-page metadata file ("<stem>.json").
type sidecar struct {
	Url  string `json:"url"`
	Type string `json:"type"`
}

// Loader reads documents from a corpus directory.
type Loader struct {
	root   string
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a loader rooted at the given directory.
func NewLoader(root string, opts ...Option) (*Loader, error) {
	if root == "" {
		return nil, ErrRootRequired
	}

	l := &Loader{
		root:   root,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// ListDocuments returns the relative paths of every markdown page under the
// root, sorted lexically so ingestion order is reproducible.
func (l *Loader) ListDocuments() ([]string, error) {
	var paths []string

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadDocument reads one page by its relative path. The service is the first
// path segment, the source id is the file stem, and sidecar metadata is read
// when present. Returns ErrDocumentTooSmall for pages below the indexable
// minimum; callers skip those without aborting the batch.
func (l *Loader) LoadDocument(relPath string) (*core.Document, error) {
	fullPath := filepath.Join(l.root, filepath.FromSlash(relPath))

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", relPath, err)
	}

	text := string(data)
	if len(strings.TrimSpace(text)) < minDocumentBytes {
		return nil, fmt.Errorf("%s: %w", relPath, ErrDocumentTooSmall)
	}

	doc := &core.Document{
		Path:     relPath,
		Service:  serviceOf(relPath),
		SourceId: stemOf(relPath),
		Text:     text,
	}

	meta, err := l.readSidecar(fullPath)
	if err != nil {
		// Provenance only; a broken sidecar never blocks the page itself.
		l.logger.Warn("ignoring unreadable sidecar", "path", relPath, "err", err)
	} else if meta != nil {
		doc.Url = meta.Url
		doc.DocType = meta.Type
	}

	return doc, nil
}

// readSidecar loads "<stem>.json" next to the page, or nil if absent.
func (l *Loader) readSidecar(pagePath string) (*sidecar, error) {
	sidecarPath := strings.TrimSuffix(pagePath, filepath.Ext(pagePath)) + ".json"

	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var meta sidecar
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// serviceOf derives the service from the first path segment.
func serviceOf(relPath string) string {
	segment, _, found := strings.Cut(relPath, "/")
	if !found {
		return fallbackService
	}
	return segment
}

// stemOf returns the file name without its extension.
func stemOf(relPath string) string {
	base := filepath.Base(relPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
