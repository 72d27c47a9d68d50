package badger

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/casperlabs/casper-go/model/casper"
	"github.com/casperlabs/casper-go/storage"
	"github.com/casperlabs/casper-go/storage/badger/operation"
)

// Eras implements persistent storage for the era tree on top of badger.
type Eras struct {
	db *badger.DB
}

var _ storage.Eras = (*Eras)(nil)

func NewEras(db *badger.DB) *Eras {
	return &Eras{db: db}
}

// AddEra stores the era and indexes it as a child of its parent. The upsert
// is idempotent. A non-genesis era whose parent is not stored is rejected.
func (e *Eras) AddEra(era *casper.Era) error {
	return operation.RetryOnConflict(e.db.Update, func(tx *badger.Txn) error {
		if !era.IsGenesis() {
			var parent casper.Era
			err := operation.RetrieveEra(era.ParentKeyBlockHash, &parent)(tx)
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("parent era %x is not stored: %w", era.ParentKeyBlockHash, err)
			}
			if err != nil {
				return fmt.Errorf("could not check parent era: %w", err)
			}
		}
		err := operation.UpsertEra(era)(tx)
		if err != nil {
			return fmt.Errorf("could not store era: %w", err)
		}
		if !era.IsGenesis() {
			err = operation.IndexEraChild(era.ParentKeyBlockHash, era.KeyBlockHash)(tx)
			if err != nil {
				return fmt.Errorf("could not index era child: %w", err)
			}
		}
		return nil
	})
}

// ByKeyBlockHash returns the era with the given key block hash, erroring
// with storage.ErrNotFound if it is unknown.
func (e *Eras) ByKeyBlockHash(hash casper.Hash) (*casper.Era, error) {
	tx := e.db.NewTransaction(false)
	defer tx.Discard()
	var era casper.Era
	err := operation.RetrieveEra(hash, &era)(tx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve era %x: %w", hash, err)
	}
	return &era, nil
}

// Children returns the stored child eras of the given era.
func (e *Eras) Children(hash casper.Hash) ([]*casper.Era, error) {
	tx := e.db.NewTransaction(false)
	defer tx.Discard()
	var hashes []casper.Hash
	err := operation.LookupEraChildren(hash, &hashes)(tx)
	if err != nil {
		return nil, fmt.Errorf("could not look up children of era %x: %w", hash, err)
	}
	children := make([]*casper.Era, 0, len(hashes))
	for _, child := range hashes {
		var era casper.Era
		err = operation.RetrieveEra(child, &era)(tx)
		if err != nil {
			return nil, fmt.Errorf("could not retrieve child era %x: %w", child, err)
		}
		entry := era
		children = append(children, &entry)
	}
	return children, nil
}

// Childless returns the stored eras without any stored children, the current
// tips of the era tree.
func (e *Eras) Childless() ([]*casper.Era, error) {
	tx := e.db.NewTransaction(false)
	defer tx.Discard()
	var all []*casper.Era
	err := operation.FindEras(&all)(tx)
	if err != nil {
		return nil, fmt.Errorf("could not find eras: %w", err)
	}
	var tips []*casper.Era
	for _, era := range all {
		var children []casper.Hash
		err = operation.LookupEraChildren(era.KeyBlockHash, &children)(tx)
		if err != nil {
			return nil, fmt.Errorf("could not look up children of era %x: %w", era.KeyBlockHash, err)
		}
		if len(children) == 0 {
			tips = append(tips, era)
		}
	}
	return tips, nil
}
