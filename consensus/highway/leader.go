package highway

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/casperlabs/casper-go/model/casper"
)

// Leader selects the round leader for the given era and round by a weighted
// pseudo-random draw over the era's bonded validators, seeded by the era's
// leader schedule seed. The draw is deterministic, so every node derives the
// same schedule.
func Leader(era *casper.Era, round casper.Round) casper.ValidatorID {
	total := era.BondedValidators.TotalWeight()
	if total == 0 {
		// no leader can be drawn from a snapshot without weight
		panic("era has no bonded weight")
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(round))
	h, _ := blake2b.New256(nil)
	h.Write(era.LeaderSeed)
	h.Write(era.KeyBlockHash[:])
	h.Write(buf[:])
	digest := h.Sum(nil)

	// walk the canonical validator order until the draw target is covered
	target := binary.BigEndian.Uint64(digest[:8]) % total
	var cum uint64
	for _, v := range era.BondedValidators {
		cum += v.Weight
		if target < cum {
			return v.ID
		}
	}

	// unreachable: cum == total > target
	return era.BondedValidators[len(era.BondedValidators)-1].ID
}

// ChildLeaderSeed derives the leader schedule seed of a child era from its
// parent's seed and the switch block hash.
func ChildLeaderSeed(parent *casper.Era, keyBlockHash casper.Hash) []byte {
	h, _ := blake2b.New256(nil)
	h.Write(parent.LeaderSeed)
	h.Write(keyBlockHash[:])
	return h.Sum(nil)
}
