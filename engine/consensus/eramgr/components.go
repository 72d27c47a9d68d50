package eramgr

import (
	"sync"

	"github.com/casperlabs/casper-go/consensus/highway"
	"github.com/casperlabs/casper-go/model/casper"
)

// EraComponents bundles a loaded era runtime with the set of child eras the
// supervisor knows about. Entries are owned exclusively by the supervisor;
// external callers receive read-only snapshots.
type EraComponents struct {
	// mu serializes all runtime invocations for this era, so that message
	// and agenda handling on the same runtime never overlap
	mu      sync.Mutex
	runtime *highway.Runtime

	childrenMu sync.RWMutex
	children   map[casper.Hash]struct{}
}

func newEraComponents(runtime *highway.Runtime, children []*casper.Era) *EraComponents {
	comps := &EraComponents{
		runtime:  runtime,
		children: make(map[casper.Hash]struct{}, len(children)),
	}
	for _, child := range children {
		comps.children[child.KeyBlockHash] = struct{}{}
	}
	return comps
}

// Era returns the era this entry is bound to.
func (c *EraComponents) Era() *casper.Era {
	return c.runtime.Era()
}

// Children returns a snapshot of the child era hashes currently known for
// this entry.
func (c *EraComponents) Children() []casper.Hash {
	c.childrenMu.RLock()
	defer c.childrenMu.RUnlock()
	children := make([]casper.Hash, 0, len(c.children))
	for child := range c.children {
		children = append(children, child)
	}
	return children
}

func (c *EraComponents) addChild(child casper.Hash) {
	c.childrenMu.Lock()
	defer c.childrenMu.Unlock()
	c.children[child] = struct{}{}
}
