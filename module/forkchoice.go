package module

import (
	"github.com/casperlabs/casper-go/model/casper"
)

// ForkChoice receives per-era latest-message observations and is consulted
// elsewhere to pick block parents. Updates are idempotent per
// (era, message hash); the component reconciles with its own persisted state
// on the first observation per era.
type ForkChoice interface {

	// UpdateLatestMessage records the given message as the latest observed
	// message from its validator, in the context of the given era.
	UpdateLatestMessage(era casper.Hash, message *casper.Message) error
}
