// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package docsift

import (
	"log/slog"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/ai/openai"
	"github.com/poiesic/docsift/ingestion"
	"github.com/poiesic/docsift/search"
	"github.com/poiesic/docsift/storage"
	"github.com/poiesic/docsift/storage/badger"
)

// Database wires the badger backend, repositories, and the AI provider into
// one handle. It is the entry point for embedding docsift into a host
// application; the CLI builds everything through it.
type Database struct {
	backend   *badger.Backend
	chunkRepo storage.ChunkRepository
	indexRepo storage.IndexRepository
	provider  ai.AIProvider
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemory opens the backend in memory, without touching disk.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	indexRepo, err := badger.NewIndexRepository(backend)
	if err != nil {
		chunkRepo.Close()
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		chunkRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:   backend,
		chunkRepo: chunkRepo,
		indexRepo: indexRepo,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.chunkRepo.Close(); err != nil {
		db.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ChunkRepository() storage.ChunkRepository {
	return db.chunkRepo
}

func (db *Database) IndexRepository() storage.IndexRepository {
	return db.indexRepo
}

func (db *Database) NewIngestionPipeline(source ingestion.DocumentSource, opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(source, db.chunkRepo, db.provider, opts...)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.chunkRepo, db.provider, opts...)
}

func (db *Database) NewIndexCache() (*search.IndexCache, error) {
	return search.NewIndexCache(db.chunkRepo, db.indexRepo)
}
