package storage

import (
	"context"

	"github.com/poiesic/docsift/core"
)

// ChunkRepository provides operations for managing chunks and their
// embedding vectors. Implementations must be thread-safe and support
// concurrent access.
type ChunkRepository interface {
	// AddChunks adds one or more chunks to storage.
	// Sets InsertedAt timestamp if not already set.
	// Returns the chunks with timestamps populated.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunk retrieves a single chunk by id.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id string) (*core.Chunk, error)

	// GetChunks retrieves multiple chunks by their ids.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...string) ([]*core.Chunk, error)

	// GetAllChunks retrieves every chunk in storage. Order is unspecified
	// except that it is stable for an unchanged corpus.
	GetAllChunks(ctx context.Context) ([]*core.Chunk, error)

	// CountChunks returns the number of stored chunks. Used as the
	// corpus-size fingerprint for lexical index staleness checks.
	CountChunks(ctx context.Context) (int, error)

	// DeleteChunks removes chunks by their ids.
	// Returns ErrNotFound if any chunk doesn't exist.
	DeleteChunks(ctx context.Context, ids ...string) error

	// FindSimilar finds the chunks nearest to the given vector, ordered by
	// ascending cosine distance, up to limit results. Chunks without an
	// embedding are skipped.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.VectorMatch, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// IndexRepository persists the cached lexical index. The stored index is
// only ever replaced wholesale, never mutated in place, so readers never
// observe a partially written index.
type IndexRepository interface {
	// SaveLexicalIndex persists the index, replacing any previous one.
	SaveLexicalIndex(ctx context.Context, index *core.LexicalIndex) error

	// LoadLexicalIndex retrieves the persisted index.
	// Returns nil, nil if no index has been saved.
	LoadLexicalIndex(ctx context.Context) (*core.LexicalIndex, error)
}
