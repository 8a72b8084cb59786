// Package ingestion provides pipeline orchestration for building the chunk store.
//
// The Pipeline type manages the ingestion workflow for documentation pages:
//   - Listing and loading pages from a corpus source
//   - Segmenting pages into chunks concurrently using a worker pool
//   - Generating embeddings in batches
//   - Inserting normalized chunks into storage
//
// Per-file failures are counted and logged but do not abort the run;
// infrastructure failures (embedding service, storage) do.
package ingestion
