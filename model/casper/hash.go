package casper

import (
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v4"
	"golang.org/x/crypto/blake2b"
)

// HashLen is the size of content hashes in bytes.
const HashLen = 32

// Hash is the content hash identifying a consensus entity (era, message,
// block). The zero value marks the absence of an entity.
type Hash [HashLen]byte

// ZeroHash is the zero value hash.
var ZeroHash = Hash{}

// HashFromBytes constructs a hash from a byte slice; the input is truncated
// or zero-padded to the hash length.
func HashFromBytes(b []byte) Hash {
	var h Hash
	copy(h[:], b)
	return h
}

// MakeHash hashes the canonical encoding of the given entity and returns it
// as the entity's content hash.
func MakeHash(entity interface{}) Hash {
	data, err := msgpack.Marshal(entity)
	if err != nil {
		// the entity models used in this codebase are all encodable
		panic(fmt.Sprintf("could not encode entity for hashing: %v", err))
	}
	return blake2b.Sum256(data)
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero returns true if the hash is the zero value.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}
