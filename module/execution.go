package module

import (
	"github.com/casperlabs/casper-go/model/casper"
)

// BlockProcessor is the external block pipeline hook. The era supervisor
// hands every validated block over for persistence and execution before
// propagating it to fork choice.
type BlockProcessor interface {

	// Process persists and executes the given block.
	Process(block *casper.Block) error
}
