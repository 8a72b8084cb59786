package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// IndexCache keeps the persisted lexical index in step with the chunk store.
// The stored chunk count is the staleness fingerprint: the corpus is only
// ever bulk-rebuilt, so a matching count means the index is current.
type IndexCache struct {
	chunkRepository storage.ChunkRepository
	indexRepository storage.IndexRepository
	logger          *slog.Logger
}

// NewIndexCache creates an IndexCache over the given repositories.
func NewIndexCache(
	chunkRepository storage.ChunkRepository,
	indexRepository storage.IndexRepository,
) (*IndexCache, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if indexRepository == nil {
		return nil, ErrIndexRepositoryRequired
	}

	return &IndexCache{
		chunkRepository: chunkRepository,
		indexRepository: indexRepository,
		logger:          slog.Default().With("component", "index-cache"),
	}, nil
}

// LoadOrBuild returns the current lexical index. A persisted index whose
// DocCount matches the live chunk count is reused; otherwise the index is
// rebuilt from all chunks and persisted. Staleness is handled transparently,
// never surfaced as an error.
func (c *IndexCache) LoadOrBuild(ctx context.Context) (*core.LexicalIndex, error) {
	count, err := c.chunkRepository.CountChunks(ctx)
	if err != nil {
		return nil, err
	}

	index, err := c.indexRepository.LoadLexicalIndex(ctx)
	if err != nil {
		return nil, err
	}
	if index != nil && index.DocCount == count {
		c.logger.Debug("reusing cached lexical index", "docCount", count)
		return index, nil
	}

	if index != nil {
		c.logger.Info("lexical index stale, rebuilding",
			"cachedCount", index.DocCount, "liveCount", count)
	} else {
		c.logger.Info("no cached lexical index, building", "liveCount", count)
	}

	chunks, err := c.chunkRepository.GetAllChunks(ctx)
	if err != nil {
		return nil, err
	}

	index = BuildLexicalIndex(chunks)
	if err := c.indexRepository.SaveLexicalIndex(ctx, index); err != nil {
		return nil, err
	}

	c.logger.Info("lexical index built", "docCount", index.DocCount, "terms", len(index.DocFreqs))
	return index, nil
}
