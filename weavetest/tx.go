package weavetest

import "github.com/iov-one/stateless-weave"

// Tx represents a weave transaction.
// A transaction carries an ordered list of instructions.
type Tx struct {
	// Instructions are returned by the GetInstructions method.
	Instructions []*weave.Instruction
	// Err if set is returned by any method call.
	Err error
}

var _ weave.Tx = (*Tx)(nil)

// NewTx returns a transaction with given instructions.
func NewTx(ixs ...*weave.Instruction) *Tx {
	return &Tx{Instructions: ixs}
}

func (tx *Tx) GetInstructions() ([]*weave.Instruction, error) {
	return tx.Instructions, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Instruction returns an instruction addressed to the program registered
// under given name. Data is passed as is.
func Instruction(program string, data []byte, accounts ...weave.AccountMeta) *weave.Instruction {
	return &weave.Instruction{
		ProgramID: weave.ProgramID(program),
		Accounts:  accounts,
		Data:      data,
	}
}
