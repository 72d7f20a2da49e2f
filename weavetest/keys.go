package weavetest

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random key.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}
