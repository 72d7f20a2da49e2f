package cash

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/coin"
	"github.com/iov-one/stateless-weave/errors"
	amino "github.com/tendermint/go-amino"
)

// ProgramName is the name the cash program is registered under.
const ProgramName = "cash"

// ProgramID is the address of the cash program.
var ProgramID = weave.ProgramID(ProgramName)

const maxMemoSize int = 128

// SendMsg moves coins from the first account of the instruction to the
// second one. The source account must be a signer.
type SendMsg struct {
	Amount coin.Coin
	Memo   string
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, m)
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", m.Amount)
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

// NewSendInstruction returns an instruction for the cash program that moves
// given amount from src to dest.
func NewSendInstruction(src, dest weave.Address, amount coin.Coin, memo string) (*weave.Instruction, error) {
	msg := SendMsg{Amount: amount, Memo: memo}
	data, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal")
	}
	return &weave.Instruction{
		ProgramID: ProgramID,
		Accounts: []weave.AccountMeta{
			{Address: src, IsSigner: true, IsWritable: true},
			{Address: dest, IsWritable: true},
		},
		Data: data,
	}, nil
}
