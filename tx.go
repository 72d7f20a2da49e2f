package weave

import (
	"context"

	"github.com/iov-one/stateless-weave/errors"
	amino "github.com/tendermint/go-amino"
)

// Marshaller is anything that can be represented in binary
//
// Marshall may validate the data before serializing it and
// unless you previously validated the struct,
// errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
//
// As with Marshaller, this may do internal validation on the data
// and errors should be expected.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represent the data sent from the user to the chain.
// It includes an ordered list of instructions, along with
// information needed to authenticate the sender
// (cryptographic signatures), and anything else needed to
// pass through middleware.
//
// Each Application must define their own tx type, which
// embeds all the middlewares that we wish to use.
type Tx interface {
	Persistent

	// GetInstructions returns all instructions in the order
	// they must be executed.
	GetInstructions() ([]*Instruction, error)
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// AccountMeta references an account used by an instruction.
type AccountMeta struct {
	Address    Address
	IsSigner   bool
	IsWritable bool
}

// Instruction is a single call to a program. A program is
// identified by its address and receives the referenced accounts
// together with the opaque instruction data.
type Instruction struct {
	ProgramID Address
	Accounts  []AccountMeta
	Data      []byte
}

var _ Persistent = (*Instruction)(nil)

func (ix *Instruction) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(ix)
}

func (ix *Instruction) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, ix)
}

// Validate returns an error if the instruction does not reference a
// program or contains malformed account addresses.
func (ix *Instruction) Validate() error {
	if ix == nil {
		return errors.Wrap(errors.ErrEmpty, "instruction")
	}
	if err := ix.ProgramID.Validate(); err != nil {
		return errors.Wrap(err, "program id")
	}
	for i, a := range ix.Accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}

// Signers returns addresses of all accounts that are flagged as signers.
func (ix *Instruction) Signers() []Address {
	var signers []Address
	for _, a := range ix.Accounts {
		if a.IsSigner {
			signers = append(signers, a.Address)
		}
	}
	return signers
}

// LoadInstruction returns the only instruction of given transaction.
// Handlers are always called with a transaction that carries exactly one
// instruction, the one that is addressed to them.
func LoadInstruction(tx Tx) (*Instruction, error) {
	ixs, err := tx.GetInstructions()
	if err != nil {
		return nil, errors.Wrap(err, "instructions")
	}
	if len(ixs) != 1 {
		return nil, errors.Wrapf(errors.ErrHuman, "single instruction expected, got %d", len(ixs))
	}
	if err := ixs[0].Validate(); err != nil {
		return nil, errors.Wrap(err, "instruction")
	}
	return ixs[0], nil
}

// instructionsView is stored in the context while the instructions of a
// transaction are processed.
type instructionsView struct {
	all     []*Instruction
	current int
}

// WithInstructions stores the full list of instructions of the processed
// transaction together with the index of the currently executed one. This
// allows handlers to introspect sibling instructions.
func WithInstructions(ctx Context, all []*Instruction, current int) Context {
	return context.WithValue(ctx, contextKeyInstructions, instructionsView{all: all, current: current})
}

// CurrentInstructionIndex returns the index of the instruction that is
// being executed. It returns false if no instruction information is
// available.
func CurrentInstructionIndex(ctx Context) (int, bool) {
	v, ok := ctx.Value(contextKeyInstructions).(instructionsView)
	if !ok {
		return 0, false
	}
	return v.current, true
}

// InstructionAt returns a sibling instruction, relative to the currently
// executed one. Use -1 to access the immediately preceding instruction.
// ErrNotFound is returned if there is no instruction at the requested
// position.
func InstructionAt(ctx Context, relative int) (*Instruction, error) {
	v, ok := ctx.Value(contextKeyInstructions).(instructionsView)
	if !ok {
		return nil, errors.Wrap(errors.ErrNotFound, "no instructions in context")
	}
	idx := v.current + relative
	if idx < 0 || idx >= len(v.all) {
		return nil, errors.Wrapf(errors.ErrNotFound, "no instruction at %d", idx)
	}
	return v.all[idx], nil
}
