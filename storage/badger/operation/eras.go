package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/casperlabs/casper-go/model/casper"
)

// UpsertEra stores the era under its key block hash, overwriting an existing
// entry.
func UpsertEra(era *casper.Era) func(*badger.Txn) error {
	return upsert(makePrefix(codeEra, era.KeyBlockHash), era)
}

// RetrieveEra retrieves the era with the given key block hash.
func RetrieveEra(hash casper.Hash, era *casper.Era) func(*badger.Txn) error {
	return retrieve(makePrefix(codeEra, hash), era)
}

// IndexEraChild inserts an index to look up the child eras of an era by its
// key block hash.
func IndexEraChild(parent casper.Hash, child casper.Hash) func(*badger.Txn) error {
	return upsert(makePrefix(codeEraChild, parent, child), child)
}

// LookupEraChildren collects the key block hashes of the era's indexed
// children.
func LookupEraChildren(parent casper.Hash, children *[]casper.Hash) func(*badger.Txn) error {
	return traverse(makePrefix(codeEraChild, parent), lookup(children))
}

// FindEras collects all stored eras.
func FindEras(eras *[]*casper.Era) func(*badger.Txn) error {
	*eras = make([]*casper.Era, 0, len(*eras))
	iteration := func() (checkFunc, createFunc, handleFunc) {
		check := func(key []byte) bool {
			return true
		}
		var era casper.Era
		create := func() interface{} {
			era = casper.Era{}
			return &era
		}
		handle := func() error {
			entry := era
			*eras = append(*eras, &entry)
			return nil
		}
		return check, create, handle
	}
	return traverse(makePrefix(codeEra), iteration)
}
