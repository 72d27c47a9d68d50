package unittest

import (
	crand "crypto/rand"

	"github.com/casperlabs/casper-go/model/casper"
)

// HashFixture returns a random hash.
func HashFixture() casper.Hash {
	var hash casper.Hash
	read(hash[:])
	return hash
}

// ValidatorIDFixture returns a random validator identity.
func ValidatorIDFixture() casper.ValidatorID {
	var id casper.ValidatorID
	read(id[:])
	return id
}

// ValidatorFixture returns a validator with unit weight.
func ValidatorFixture() *casper.Validator {
	return &casper.Validator{
		ID:     ValidatorIDFixture(),
		Weight: 1,
	}
}

// ValidatorListFixture returns n validators with unit weight.
func ValidatorListFixture(n int) casper.ValidatorList {
	validators := make(casper.ValidatorList, 0, n)
	for i := 0; i < n; i++ {
		validators = append(validators, ValidatorFixture())
	}
	return validators
}

// EraFixture returns a genesis era, modified by the given options.
func EraFixture(opts ...func(*casper.Era)) *casper.Era {
	era := &casper.Era{
		KeyBlockHash:       HashFixture(),
		ParentKeyBlockHash: casper.ZeroHash,
		StartTick:          0,
		EndTick:            1024,
		BondedValidators:   ValidatorListFixture(4),
		LeaderSeed:         []byte("fixture-seed"),
	}
	for _, opt := range opts {
		opt(era)
	}
	return era
}

// WithParentEra chains the era below the given parent.
func WithParentEra(parent *casper.Era) func(*casper.Era) {
	return func(era *casper.Era) {
		era.ParentKeyBlockHash = parent.KeyBlockHash
		era.StartTick = parent.EndTick
		era.EndTick = parent.EndTick + (parent.EndTick - parent.StartTick)
		era.BondedValidators = parent.BondedValidators
	}
}

// WithEraBounds sets the era's tick bounds.
func WithEraBounds(start, end casper.Tick) func(*casper.Era) {
	return func(era *casper.Era) {
		era.StartTick = start
		era.EndTick = end
	}
}

// WithBondedValidators sets the era's validator snapshot.
func WithBondedValidators(validators casper.ValidatorList) func(*casper.Era) {
	return func(era *casper.Era) {
		era.BondedValidators = validators
	}
}

// MessageFixture returns a ballot message, modified by the given options.
func MessageFixture(opts ...func(*casper.Message)) *casper.Message {
	message := &casper.Message{
		Hash:         HashFixture(),
		ParentHash:   HashFixture(),
		KeyBlockHash: HashFixture(),
		Round:        0,
		Validator:    ValidatorIDFixture(),
		Kind:         casper.MessageBallot,
	}
	for _, opt := range opts {
		opt(message)
	}
	return message
}

// WithMessageEra issues the message from the given era, signed by the era's
// first bonded validator.
func WithMessageEra(era *casper.Era) func(*casper.Message) {
	return func(message *casper.Message) {
		message.KeyBlockHash = era.KeyBlockHash
		message.Validator = era.BondedValidators[0].ID
	}
}

// WithMessageKind sets the message kind.
func WithMessageKind(kind casper.MessageKind) func(*casper.Message) {
	return func(message *casper.Message) {
		message.Kind = kind
	}
}

// WithMessageRound sets the message round.
func WithMessageRound(round casper.Round) func(*casper.Message) {
	return func(message *casper.Message) {
		message.Round = round
	}
}

// WithMessageValidator sets the message creator.
func WithMessageValidator(id casper.ValidatorID) func(*casper.Message) {
	return func(message *casper.Message) {
		message.Validator = id
	}
}

// BlockFixture returns a block carrying the given message fields.
func BlockFixture(opts ...func(*casper.Message)) *casper.Block {
	message := MessageFixture(opts...)
	return &casper.Block{
		Hash:         message.Hash,
		ParentHash:   message.ParentHash,
		KeyBlockHash: message.KeyBlockHash,
		Creator:      message.Validator,
		Round:        message.Round,
		Kind:         message.Kind,
		Payload:      []byte("payload"),
	}
}

func read(buf []byte) {
	_, err := crand.Read(buf)
	if err != nil {
		panic("could not read random bytes")
	}
}
