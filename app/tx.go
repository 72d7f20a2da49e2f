package app

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/crypto"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/x/sigs"
	amino "github.com/tendermint/go-amino"
)

// Tx is the transaction envelope accepted by the application. It carries an
// ordered list of instructions and the signatures of its submitters.
type Tx struct {
	Instructions []*weave.Instruction
	Signatures   []*sigs.StdSignature
}

var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given instructions.
func NewTx(ixs ...*weave.Instruction) *Tx {
	return &Tx{Instructions: ixs}
}

func (tx *Tx) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, tx)
}

// GetInstructions returns all instructions of this transaction.
func (tx *Tx) GetInstructions() ([]*weave.Instruction, error) {
	return tx.Instructions, nil
}

// GetSignatures returns the envelope signatures.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Instructions: tx.Instructions}
	raw, err := unsigned.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// Sign appends the signature of the submitter for given chain.
func (tx *Tx) Sign(signer crypto.Signer, chainID string) error {
	sig, err := sigs.SignTx(signer, tx, chainID)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(raw []byte) (weave.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode transaction: %s", err)
	}
	return &tx, nil
}
