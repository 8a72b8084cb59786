package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/segment"
	"github.com/poiesic/docsift/storage"
)

const (
	// defaultFileBatchSize is how many pages are segmented per worker wave.
	defaultFileBatchSize = 100

	// defaultEmbedBatchSize is how many chunk contents are embedded per call.
	defaultEmbedBatchSize = 256

	// progressReportInterval reports progress every N processed files.
	progressReportInterval = 10

	// defaultMaxRetries and defaultRetryDelay govern embedding retries.
	defaultMaxRetries = 3
	defaultRetryDelay = 1 * time.Second
)

// DocumentSource lists and loads the pages of a corpus.
// corpus.Loader is the filesystem implementation.
type DocumentSource interface {
	ListDocuments() ([]string, error)
	LoadDocument(relPath string) (*core.Document, error)
}

// Stats summarizes one ingestion run.
type Stats struct {
	TotalFiles     int
	ProcessedFiles int
	FailedFiles    int
	TotalChunks    int
	TotalTokens    int
}

// Pipeline orchestrates the ingestion of documentation pages.
// It segments pages concurrently, embeds chunk contents in batches, and
// inserts normalized chunks into storage.
type Pipeline struct {
	source          DocumentSource
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	segmenter       *segment.Segmenter
	pool            *ants.Pool
	fileBatchSize   int
	embedBatchSize  int
	maxRetries      int
	retryDelay      time.Duration
	progressWriter  io.Writer
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent segmentation.
// Default is runtime.NumCPU() - 1, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithSegmenter sets a custom segmenter.
// Default is segment.NewSegmenter() with standard bounds.
func WithSegmenter(segmenter *segment.Segmenter) Option {
	return func(p *Pipeline) error {
		if segmenter == nil {
			return fmt.Errorf("segmenter must not be nil")
		}
		p.segmenter = segmenter
		return nil
	}
}

// WithEmbedBatchSize sets how many chunk contents are embedded per call.
// Default is 256. Batch boundaries never affect per-chunk embeddings.
func WithEmbedBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("embed batch size must be positive")
		}
		p.embedBatchSize = size
		return nil
	}
}

// WithRetryPolicy sets the retry policy for embedding calls.
// Default is 3 attempts with a 1 second base delay.
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		p.maxRetries = maxAttempts
		p.retryDelay = baseDelay
		return nil
	}
}

// WithProgressWriter enables progress reporting to the given writer
// (typically os.Stderr). Default is no progress output.
func WithProgressWriter(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progressWriter = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	source DocumentSource,
	chunkRepository storage.ChunkRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() - 1
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	segmenter, err := segment.NewSegmenter()
	if err != nil {
		pool.Release()
		return nil, err
	}

	p := &Pipeline{
		source:          source,
		chunkRepository: chunkRepository,
		embedder:        provider.Embedder(),
		segmenter:       segmenter,
		pool:            pool,
		fileBatchSize:   defaultFileBatchSize,
		embedBatchSize:  defaultEmbedBatchSize,
		maxRetries:      defaultMaxRetries,
		retryDelay:      defaultRetryDelay,
		logger:          slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run ingests the whole corpus and returns run statistics.
// Unloadable pages are counted in FailedFiles and logged; embedding or
// storage failures abort the run.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	paths, err := p.source.ListDocuments()
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalFiles: len(paths)}
	p.logger.Info("starting ingestion", "files", stats.TotalFiles)

	var tracker *ProgressTracker
	if p.progressWriter != nil {
		tracker = NewProgressTracker(p.progressWriter, stats.TotalFiles, progressReportInterval)
		tracker.Start()
	}

	for start := 0; start < len(paths); start += p.fileBatchSize {
		end := start + p.fileBatchSize
		if end > len(paths) {
			end = len(paths)
		}
		batch := paths[start:end]

		chunks, processed, failed := p.segmentBatch(batch)
		stats.ProcessedFiles += processed
		stats.FailedFiles += failed

		if err := p.embedAndStore(ctx, chunks); err != nil {
			return nil, err
		}

		stats.TotalChunks += len(chunks)
		for _, chunk := range chunks {
			stats.TotalTokens += chunk.TokenCount
		}

		if tracker != nil {
			tracker.Increment(len(batch))
		}
	}

	if tracker != nil {
		tracker.Finish()
	}

	p.logger.Info("ingestion complete",
		"processed", stats.ProcessedFiles,
		"failed", stats.FailedFiles,
		"chunks", stats.TotalChunks,
		"tokens", stats.TotalTokens)

	return stats, nil
}

// segmentBatch loads and segments one wave of pages on the worker pool.
// Workers share no mutable state; per-file results are merged by
// concatenation afterwards, so only within-document order is guaranteed.
func (p *Pipeline) segmentBatch(batch []string) (chunks []*core.Chunk, processed, failed int) {
	results := make([][]*core.Chunk, len(batch))
	failures := make([]bool, len(batch))

	var wg sync.WaitGroup
	for i, relPath := range batch {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			doc, err := p.source.LoadDocument(relPath)
			if err != nil {
				p.logger.Warn("skipping document", "path", relPath, "err", err)
				failures[i] = true
				return
			}

			results[i] = p.segmenter.Segment(*doc)
		})
		if submitErr != nil {
			// Pool rejected the task (released or overloaded); fail the file.
			p.logger.Warn("skipping document", "path", relPath, "err", submitErr)
			failures[i] = true
			wg.Done()
		}
	}
	wg.Wait()

	for i := range batch {
		if failures[i] {
			failed++
			continue
		}
		processed++
		chunks = append(chunks, results[i]...)
	}
	return chunks, processed, failed
}

// embedAndStore embeds chunk contents in fixed-size batches, normalizes the
// vectors, and inserts the chunks. Embedding calls are retried with
// exponential backoff before the run is aborted.
func (p *Pipeline) embedAndStore(ctx context.Context, chunks []*core.Chunk) error {
	for start := 0; start < len(chunks); start += p.embedBatchSize {
		end := start + p.embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		var embeddings [][]float32
		err := RetryWithBackoff(ctx, func() error {
			var embedErr error
			embeddings, embedErr = p.embedder.EmbedTexts(ctx, texts)
			return embedErr
		}, p.maxRetries, p.retryDelay)
		if err != nil {
			p.logger.Error("error generating embeddings", "count", len(texts), "err", err)
			return err
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(embeddings))
		}

		for i := range embeddings {
			batch[i].Vector = NormalizeVector(embeddings[i])
		}

		if _, err := p.chunkRepository.AddChunks(ctx, batch...); err != nil {
			p.logger.Error("error storing chunks", "count", len(batch), "err", err)
			return err
		}
	}
	return nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
