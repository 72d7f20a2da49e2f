package batch

import (
	"strings"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/libs/common"
)

// MaxInstructions is the maximum number of instructions a single
// transaction can carry.
const MaxInstructions = 32

// Decorator iterates through transaction instructions and passes them down
// the stack one by one.
type Decorator struct{}

var _ weave.Decorator = Decorator{}

// NewDecorator returns an instruction runner decorator.
func NewDecorator() Decorator {
	return Decorator{}
}

// InstructionTx is a transaction that carries a single instruction of its
// parent transaction.
type InstructionTx struct {
	weave.Tx
	Instruction *weave.Instruction
}

// GetInstructions returns the single instruction wrapped by this
// transaction.
func (tx *InstructionTx) GetInstructions() ([]*weave.Instruction, error) {
	return []*weave.Instruction{tx.Instruction}, nil
}

// ByteArrayList is the result data of a transaction. It holds the result
// data of each instruction, in the order they were executed.
type ByteArrayList struct {
	Elements [][]byte
}

func (l *ByteArrayList) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(l)
}

func (l *ByteArrayList) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, l)
}

func instructions(tx weave.Tx) ([]*weave.Instruction, error) {
	ixs, err := tx.GetInstructions()
	if err != nil {
		return nil, err
	}
	switch n := len(ixs); {
	case n == 0:
		return nil, errors.Wrap(errors.ErrEmpty, "no instructions")
	case n > MaxInstructions:
		return nil, errors.Wrapf(errors.ErrInput, "too many instructions: %d > %d", n, MaxInstructions)
	}
	return ixs, nil
}

// Check iterates through instructions of a transaction and passes them
// down the stack
func (d Decorator) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	ixs, err := instructions(tx)
	if err != nil {
		return nil, err
	}
	checks := make([]*weave.CheckResult, len(ixs))
	for i, ix := range ixs {
		ictx := weave.WithInstructions(ctx, ixs, i)
		checks[i], err = next.Check(ictx, store, &InstructionTx{Tx: tx, Instruction: ix})
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
	}
	return d.combineChecks(checks)
}

// combines all data bytes as a go-amino array.
// joins all log messages with \n
func (Decorator) combineChecks(checks []*weave.CheckResult) (*weave.CheckResult, error) {
	datas := make([][]byte, len(checks))
	logs := make([]string, len(checks))
	for i, r := range checks {
		datas[i] = r.Data
		logs[i] = r.Log
	}
	data, err := (&ByteArrayList{Elements: datas}).Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal result data")
	}
	return &weave.CheckResult{
		Data: data,
		Log:  strings.Join(logs, "\n"),
	}, nil
}

// Deliver iterates through instructions of a transaction and passes them
// down the stack
func (d Decorator) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	ixs, err := instructions(tx)
	if err != nil {
		return nil, err
	}
	delivers := make([]*weave.DeliverResult, len(ixs))
	for i, ix := range ixs {
		ictx := weave.WithInstructions(ctx, ixs, i)
		delivers[i], err = next.Deliver(ictx, store, &InstructionTx{Tx: tx, Instruction: ix})
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
	}
	return d.combineDelivers(delivers)
}

// combines all data bytes as a go-amino array.
// joins all log messages with \n
func (Decorator) combineDelivers(delivers []*weave.DeliverResult) (*weave.DeliverResult, error) {
	datas := make([][]byte, len(delivers))
	logs := make([]string, len(delivers))
	var tags []common.KVPair
	for i, r := range delivers {
		datas[i] = r.Data
		logs[i] = r.Log
		if len(r.Tags) > 0 {
			tags = append(tags, r.Tags...)
		}
	}
	data, err := (&ByteArrayList{Elements: datas}).Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal result data")
	}
	return &weave.DeliverResult{
		Data: data,
		Log:  strings.Join(logs, "\n"),
		Tags: tags,
	}, nil
}
