package casper

import (
	"fmt"
)

// Block is an inbound consensus block as handed over by the gossip intake.
// It carries the summary fields the era supervisor needs; the payload is
// opaque to the consensus core and handed to the block pipeline untouched.
type Block struct {
	Hash         Hash
	ParentHash   Hash
	KeyBlockHash Hash
	Creator      ValidatorID
	Round        Round
	Kind         MessageKind
	Payload      []byte
}

// AsMessage normalizes the block into a consensus message. It returns an
// error if the block cannot be interpreted as one, which callers surface as
// a malformed block.
func (b *Block) AsMessage() (*Message, error) {
	if b.Hash.IsZero() {
		return nil, fmt.Errorf("block has no hash")
	}
	if b.KeyBlockHash.IsZero() {
		return nil, fmt.Errorf("block %x has no key block hash", b.Hash)
	}
	if !b.Kind.Valid() {
		return nil, fmt.Errorf("block %x has unknown message kind (%d)", b.Hash, b.Kind)
	}
	msg := &Message{
		Hash:         b.Hash,
		ParentHash:   b.ParentHash,
		KeyBlockHash: b.KeyBlockHash,
		Round:        b.Round,
		Validator:    b.Creator,
		Kind:         b.Kind,
	}
	return msg, nil
}
