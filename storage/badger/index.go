package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// IndexRepository implements storage.IndexRepository for BadgerDB.
// The lexical index lives under a single key and is replaced wholesale.
type IndexRepository struct {
	backend *Backend
}

var _ storage.IndexRepository = (*IndexRepository)(nil)

// NewIndexRepository creates a new IndexRepository.
func NewIndexRepository(backend *Backend) (*IndexRepository, error) {
	return &IndexRepository{
		backend: backend,
	}, nil
}

// SaveLexicalIndex persists the index, replacing any previous one.
func (r *IndexRepository) SaveLexicalIndex(ctx context.Context, index *core.LexicalIndex) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		value := storage.MarshalLexicalIndex(index)
		if err := tx.Set(makeLexicalIndexKey(), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadLexicalIndex retrieves the persisted index, or nil if none exists.
func (r *IndexRepository) LoadLexicalIndex(ctx context.Context) (*core.LexicalIndex, error) {
	var result *core.LexicalIndex
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeLexicalIndexKey())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalLexicalIndex(val)
			return err
		})
	}, false)
	return result, err
}
