package badger_test

import (
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casperlabs/casper-go/model/casper"
	"github.com/casperlabs/casper-go/storage"
	badgerstorage "github.com/casperlabs/casper-go/storage/badger"
	"github.com/casperlabs/casper-go/utils/unittest"
)

func TestErasStoreRetrieve(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		eras := badgerstorage.NewEras(db)

		expected := unittest.EraFixture()
		err := eras.AddEra(expected)
		require.NoError(t, err)

		actual, err := eras.ByKeyBlockHash(expected.KeyBlockHash)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	})
}

func TestErasRetrieveUnknown(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		eras := badgerstorage.NewEras(db)

		_, err := eras.ByKeyBlockHash(unittest.HashFixture())
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}

func TestErasAddIdempotent(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		eras := badgerstorage.NewEras(db)

		era := unittest.EraFixture()
		require.NoError(t, eras.AddEra(era))
		require.NoError(t, eras.AddEra(era))

		tips, err := eras.Childless()
		require.NoError(t, err)
		require.Len(t, tips, 1)
	})
}

func TestErasRejectOrphan(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		eras := badgerstorage.NewEras(db)

		parent := unittest.EraFixture()
		orphan := unittest.EraFixture(unittest.WithParentEra(parent))
		err := eras.AddEra(orphan)
		require.Error(t, err)
	})
}

func TestErasChildren(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		eras := badgerstorage.NewEras(db)

		parent := unittest.EraFixture()
		require.NoError(t, eras.AddEra(parent))

		children, err := eras.Children(parent.KeyBlockHash)
		require.NoError(t, err)
		assert.Empty(t, children)

		first := unittest.EraFixture(unittest.WithParentEra(parent))
		second := unittest.EraFixture(unittest.WithParentEra(parent))
		require.NoError(t, eras.AddEra(first))
		require.NoError(t, eras.AddEra(second))

		children, err = eras.Children(parent.KeyBlockHash)
		require.NoError(t, err)
		require.Len(t, children, 2)

		hashes := []casper.Hash{children[0].KeyBlockHash, children[1].KeyBlockHash}
		assert.Contains(t, hashes, first.KeyBlockHash)
		assert.Contains(t, hashes, second.KeyBlockHash)
	})
}

func TestErasChildless(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		eras := badgerstorage.NewEras(db)

		root := unittest.EraFixture()
		child := unittest.EraFixture(unittest.WithParentEra(root))
		grandchild := unittest.EraFixture(unittest.WithParentEra(child))
		sibling := unittest.EraFixture(unittest.WithParentEra(root))

		require.NoError(t, eras.AddEra(root))
		require.NoError(t, eras.AddEra(child))
		require.NoError(t, eras.AddEra(grandchild))
		require.NoError(t, eras.AddEra(sibling))

		tips, err := eras.Childless()
		require.NoError(t, err)
		require.Len(t, tips, 2)

		hashes := []casper.Hash{tips[0].KeyBlockHash, tips[1].KeyBlockHash}
		assert.Contains(t, hashes, grandchild.KeyBlockHash)
		assert.Contains(t, hashes, sibling.KeyBlockHash)
	})
}
