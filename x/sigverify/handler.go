package sigverify

import (
	"bytes"
	"fmt"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/crypto"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

// RegisterRoutes registers both verification programs.
func RegisterRoutes(r weave.Registry) {
	r.Handle(Ed25519ProgramID, NewEd25519Handler())
	r.Handle(Secp256k1ProgramID, NewSecp256k1Handler())
}

// verifier checks all entries and returns the index of the first entry that
// does not verify, or -1.
type verifier func(entries []Entry) int

// Handler is a verification program. It does not modify the state. The
// transaction fails if any entry of the instruction is not valid.
type Handler struct {
	layout Layout
	verify verifier
}

var _ weave.Handler = Handler{}

// NewEd25519Handler returns the ed25519 verification program. All
// signatures are checked together using batch verification.
func NewEd25519Handler() Handler {
	return Handler{layout: Ed25519Layout, verify: verifyEd25519}
}

// NewSecp256k1Handler returns the secp256k1 verification program. The
// signer is recovered from the keccak256 digest of the message and compared
// with the entry address.
func NewSecp256k1Handler() Handler {
	return Handler{layout: Secp256k1Layout, verify: verifySecp256k1}
}

func (h Handler) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	n, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	return &weave.CheckResult{Log: fmt.Sprintf("%d %s signatures verified", n, h.layout.Name)}, nil
}

func (h Handler) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	n, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Log: fmt.Sprintf("%d %s signatures verified", n, h.layout.Name)}, nil
}

func (h Handler) validate(tx weave.Tx) (int, error) {
	ix, err := weave.LoadInstruction(tx)
	if err != nil {
		return 0, err
	}
	if len(ix.Accounts) != 0 {
		return 0, errors.Wrap(errors.ErrInput, "verification instruction takes no accounts")
	}
	entries, err := h.layout.Decode(ix.Data)
	if err != nil {
		return 0, err
	}
	if i := h.verify(entries); i >= 0 {
		return 0, errors.Wrapf(ErrInvalidSignature, "entry %d", i)
	}
	return len(entries), nil
}

func verifyEd25519(entries []Entry) int {
	if len(entries) == 0 {
		return -1
	}
	batch := ed25519.NewBatchVerifierWithCapacity(len(entries))
	for _, e := range entries {
		batch.Add(e.Identity, e.Message, e.Signature)
	}
	all, valid := batch.Verify(nil)
	if all {
		return -1
	}
	for i, ok := range valid {
		if !ok {
			return i
		}
	}
	// Unreachable unless the batch verifier misbehaves.
	return 0
}

func verifySecp256k1(entries []Entry) int {
	for i, e := range entries {
		sig := make([]byte, 0, crypto.Secp256k1SignatureSize)
		sig = append(sig, e.Signature...)
		sig = append(sig, e.RecoveryID)
		addr, err := crypto.RecoverEthAddress(crypto.Keccak256(e.Message), sig)
		if err != nil || !bytes.Equal(addr, e.Identity) {
			return i
		}
	}
	return -1
}
