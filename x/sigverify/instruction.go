package sigverify

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/crypto"
	"github.com/iov-one/stateless-weave/errors"
)

const (
	// Ed25519ProgramName is the name of the ed25519 verification program.
	Ed25519ProgramName = "ed25519_verify"
	// Secp256k1ProgramName is the name of the secp256k1 verification
	// program.
	Secp256k1ProgramName = "secp256k1_verify"
)

var (
	// Ed25519ProgramID is the address of the ed25519 verification program.
	Ed25519ProgramID = weave.ProgramID(Ed25519ProgramName)
	// Secp256k1ProgramID is the address of the secp256k1 verification
	// program.
	Secp256k1ProgramID = weave.ProgramID(Secp256k1ProgramName)
)

// NewEd25519Entry signs the message with given ed25519 key and returns the
// verification entry.
func NewEd25519Entry(signer crypto.Signer, msg []byte) (Entry, error) {
	pub := signer.PublicKey()
	if pub == nil || len(pub.Ed25519) != Ed25519Layout.IdentitySize {
		return Entry{}, errors.Wrap(errors.ErrType, "ed25519 key required")
	}
	sig, err := signer.Sign(msg)
	if err != nil {
		return Entry{}, errors.Wrap(err, "sign")
	}
	return Entry{
		Signature: sig,
		Identity:  pub.Ed25519,
		Message:   msg,
	}, nil
}

// NewSecp256k1Entry signs the keccak256 digest of the message with given
// secp256k1 key and returns the verification entry. The identity is the
// ethereum address of the key.
func NewSecp256k1Entry(signer crypto.Signer, msg []byte) (Entry, error) {
	pub := signer.PublicKey()
	if pub == nil || len(pub.Secp256k1) == 0 {
		return Entry{}, errors.Wrap(errors.ErrType, "secp256k1 key required")
	}
	addr, err := crypto.EthAddress(pub.Secp256k1)
	if err != nil {
		return Entry{}, errors.Wrap(err, "address")
	}
	sig, err := signer.Sign(msg)
	if err != nil {
		return Entry{}, errors.Wrap(err, "sign")
	}
	if len(sig) != crypto.Secp256k1SignatureSize {
		return Entry{}, errors.Wrapf(errors.ErrHuman, "unexpected signature length %d", len(sig))
	}
	return Entry{
		Signature:  sig[:Secp256k1Layout.SignatureSize],
		RecoveryID: sig[Secp256k1Layout.SignatureSize],
		Identity:   addr,
		Message:    msg,
	}, nil
}

// NewEd25519Instruction returns an instruction for the ed25519
// verification program.
func NewEd25519Instruction(entries ...Entry) (*weave.Instruction, error) {
	return newInstruction(Ed25519ProgramID, Ed25519Layout, entries)
}

// NewSecp256k1Instruction returns an instruction for the secp256k1
// verification program.
func NewSecp256k1Instruction(entries ...Entry) (*weave.Instruction, error) {
	return newInstruction(Secp256k1ProgramID, Secp256k1Layout, entries)
}

func newInstruction(program weave.Address, l Layout, entries []Entry) (*weave.Instruction, error) {
	data, err := l.Encode(entries)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", l.Name)
	}
	return &weave.Instruction{ProgramID: program, Data: data}, nil
}

// LayoutOf returns the layout used by the verification program with given
// address.
func LayoutOf(program weave.Address) (Layout, bool) {
	switch {
	case program.Equals(Ed25519ProgramID):
		return Ed25519Layout, true
	case program.Equals(Secp256k1ProgramID):
		return Secp256k1Layout, true
	default:
		return Layout{}, false
	}
}

// DecodeInstruction returns the entries of a verification instruction.
// ErrNotFound is returned if the instruction does not belong to a
// verification program.
func DecodeInstruction(ix *weave.Instruction) ([]Entry, error) {
	l, ok := LayoutOf(ix.ProgramID)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "program %s", ix.ProgramID)
	}
	return l.Decode(ix.Data)
}
