package module

import (
	"github.com/casperlabs/casper-go/model/casper"
)

// Relay broadcasts locally produced message hashes to peers. It is
// fire-and-forget: the era supervisor treats relay errors as non-fatal and
// only logs them.
type Relay interface {

	// Relay announces the given message hashes to the network.
	Relay(hashes []casper.Hash) error
}
