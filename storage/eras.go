package storage

import (
	"github.com/casperlabs/casper-go/model/casper"
)

// Eras represents persistent storage for the era tree.
type Eras interface {

	// AddEra stores the given era, keyed by its key block hash. The upsert
	// is idempotent; storing an era that is already present is a no-op.
	// Every non-genesis era must name a parent that is already stored.
	AddEra(era *casper.Era) error

	// ByKeyBlockHash returns the era with the given key block hash. It
	// errors with ErrNotFound if the era is unknown.
	ByKeyBlockHash(hash casper.Hash) (*casper.Era, error)

	// Children returns the stored child eras of the given era; empty if
	// none.
	Children(hash casper.Hash) ([]*casper.Era, error)

	// Childless returns the current tips of the era tree, the stored eras
	// without any stored children.
	Childless() ([]*casper.Era, error)
}
