package utils

import (
	"encoding/hex"

	"github.com/iov-one/stateless-weave"
	"github.com/tendermint/tendermint/libs/common"
)

// ProgramTagger will inspect the transaction being executed and add a tag
// `program = <hex program id>` for every instruction it carries. This gives
// clients a standard way to search / subscribe to transactions that called a
// given program.
type ProgramTagger struct{}

var _ weave.Decorator = ProgramTagger{}

// ProgramKey is used by ProgramTagger as the Key in the Tag it appends
const ProgramKey = "program"

// NewProgramTagger creates a ProgramTagger decorator
func NewProgramTagger() ProgramTagger {
	return ProgramTagger{}
}

// Check just passes the request along
func (ProgramTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends tags on the result if there is a success.
func (ProgramTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	ixs, err := tx.GetInstructions()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	for _, ix := range ixs {
		res.Tags = append(res.Tags, common.KVPair{
			Key:   []byte(ProgramKey),
			Value: []byte(hex.EncodeToString(ix.ProgramID)),
		})
	}
	return res, nil
}
