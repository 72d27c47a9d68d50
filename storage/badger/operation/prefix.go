package operation

import (
	"encoding/binary"
	"fmt"

	"github.com/casperlabs/casper-go/model/casper"
)

const (

	// codes for entities
	codeEra = 10

	// codes for indices
	codeEraChild = 50
)

func makePrefix(code byte, keys ...interface{}) []byte {
	prefix := make([]byte, 1)
	prefix[0] = code
	for _, key := range keys {
		prefix = append(prefix, b(key)...)
	}
	return prefix
}

func b(v interface{}) []byte {
	switch i := v.(type) {
	case uint8:
		return []byte{i}
	case uint64:
		val := make([]byte, 8)
		binary.BigEndian.PutUint64(val, i)
		return val
	case casper.Tick:
		return b(uint64(i))
	case casper.Hash:
		return i[:]
	default:
		panic(fmt.Sprintf("unsupported type to convert (%T)", v))
	}
}
