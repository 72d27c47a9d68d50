package casper

// BlockSummary is the minimal view of an executed block needed to open an
// era, in particular the genesis block configured at bootstrap.
type BlockSummary struct {
	Hash       Hash
	ParentHash Hash
	Tick       Tick
}

// Era is a time-bounded sub-DAG of consensus messages with its own
// bonded-validator snapshot and round schedule. It is identified by the hash
// of the switch block that opened it.
type Era struct {
	KeyBlockHash       Hash
	ParentKeyBlockHash Hash // zero iff genesis
	StartTick          Tick
	EndTick            Tick
	BondedValidators   ValidatorList
	LeaderSeed         []byte
}

// GenesisEra opens the era tree from the configured genesis block summary.
func GenesisEra(summary BlockSummary, bonded ValidatorList, seed []byte, duration Tick) *Era {
	return &Era{
		KeyBlockHash:       summary.Hash,
		ParentKeyBlockHash: ZeroHash,
		StartTick:          summary.Tick,
		EndTick:            summary.Tick + duration,
		BondedValidators:   bonded,
		LeaderSeed:         seed,
	}
}

// ID returns the era's primary identifier, the key block hash.
func (e *Era) ID() Hash {
	return e.KeyBlockHash
}

// IsGenesis returns true iff the era has no parent.
func (e *Era) IsGenesis() bool {
	return e.ParentKeyBlockHash.IsZero()
}
