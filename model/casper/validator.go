package casper

import (
	"encoding/hex"
)

// ValidatorID uniquely identifies a consensus validator.
type ValidatorID [32]byte

func (id ValidatorID) String() string {
	return hex.EncodeToString(id[:])
}

// Validator is one entry of an era's bonded-validator snapshot.
type Validator struct {
	ID     ValidatorID
	Weight uint64
}

// ValidatorList is the bonded-validator snapshot of an era, in canonical
// order. The order is fixed when the era's key block is sealed and feeds the
// leader schedule.
type ValidatorList []*Validator

// ByID returns the validator with the given ID, if it exists.
func (vl ValidatorList) ByID(id ValidatorID) (*Validator, bool) {
	for _, v := range vl {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// Exists returns whether the given validator is part of the list.
func (vl ValidatorList) Exists(id ValidatorID) bool {
	_, ok := vl.ByID(id)
	return ok
}

// TotalWeight returns the sum of all validator weights.
func (vl ValidatorList) TotalWeight() uint64 {
	var total uint64
	for _, v := range vl {
		total += v.Weight
	}
	return total
}
