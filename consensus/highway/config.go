package highway

import (
	"time"

	"github.com/casperlabs/casper-go/model/casper"
)

// Config holds the protocol parameters shared by all era runtimes on this
// node.
type Config struct {

	// TickUnit fixes the conversion between ticks and wall-clock time.
	TickUnit time.Duration

	// InitRoundExponent determines the round length: a round spans
	// 1 << InitRoundExponent ticks.
	InitRoundExponent uint8

	// EraDuration is the length of every era in ticks.
	EraDuration casper.Tick

	// GenesisSummary describes the block that opens the genesis era.
	GenesisSummary casper.BlockSummary

	// GenesisValidators is the bonded-validator snapshot of the genesis era.
	GenesisValidators casper.ValidatorList

	// GenesisSeed seeds the genesis era's leader schedule.
	GenesisSeed []byte

	// IsSynced reports whether the node has caught up with the network.
	// Runtimes produce no messages while out of sync.
	IsSynced func() bool

	// BondedValidator is the local validator identity, nil for read-only
	// nodes.
	BondedValidator *casper.ValidatorID
}

// RoundLength returns the length of a round in ticks.
func (c Config) RoundLength() casper.Tick {
	return casper.Tick(1) << c.InitRoundExponent
}

// GenesisEra builds the genesis era from the configured summary.
func (c Config) GenesisEra() *casper.Era {
	return casper.GenesisEra(c.GenesisSummary, c.GenesisValidators, c.GenesisSeed, c.EraDuration)
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.TickUnit <= 0 {
		return NewConfigurationErrorf("tick unit must be positive (%d)", c.TickUnit)
	}
	if c.EraDuration == 0 {
		return NewConfigurationErrorf("era duration must be positive")
	}
	if c.RoundLength() > c.EraDuration {
		return NewConfigurationErrorf("round length (%d) exceeds era duration (%d)", c.RoundLength(), c.EraDuration)
	}
	if c.GenesisSummary.Hash.IsZero() {
		return NewConfigurationErrorf("genesis summary has no hash")
	}
	if len(c.GenesisValidators) == 0 {
		return NewConfigurationErrorf("genesis validator set is empty")
	}
	return nil
}
