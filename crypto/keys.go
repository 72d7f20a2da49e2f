package crypto

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	amino "github.com/tendermint/go-amino"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message, sig []byte) bool
	Condition() weave.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() *PublicKey
}

// PublicKey holds exactly one of the supported public key types.
type PublicKey struct {
	Ed25519 []byte
	// Secp256k1 is the 65 byte uncompressed representation.
	Secp256k1 []byte
}

// unwrap a PublicKey struct into a PubKey interface
func (p *PublicKey) unwrap() PubKey {
	switch {
	case p == nil:
		return nil
	case len(p.Ed25519) != 0:
		return ed25519PubKey(p.Ed25519)
	case len(p.Secp256k1) != 0:
		return secp256k1PubKey(p.Secp256k1)
	default:
		return nil
	}
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, sig []byte) bool {
	in := p.unwrap()
	if in == nil {
		return false
	}
	return in.Verify(message, sig)
}

// Condition generates a Condition object to represent a valid
// signature.
//
//	p.Condition().Address()
//
// will return an Address if needed.
func (p *PublicKey) Condition() weave.Condition {
	in := p.unwrap()
	if in == nil {
		return nil
	}
	return in.Condition()
}

// Address is a shortcut for the address of the signature condition
func (p *PublicKey) Address() weave.Address {
	cond := p.Condition()
	if cond == nil {
		return nil
	}
	return cond.Address()
}

// Validate ensures that exactly one well formed key is set.
func (p *PublicKey) Validate() error {
	if p == nil {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	switch {
	case len(p.Ed25519) != 0 && len(p.Secp256k1) != 0:
		return errors.Wrap(errors.ErrInput, "only one key type allowed")
	case len(p.Ed25519) != 0:
		if len(p.Ed25519) != Ed25519PublicKeySize {
			return errors.Wrapf(errors.ErrInput, "ed25519 key length %d", len(p.Ed25519))
		}
	case len(p.Secp256k1) != 0:
		if len(p.Secp256k1) != Secp256k1PublicKeySize {
			return errors.Wrapf(errors.ErrInput, "secp256k1 key length %d", len(p.Secp256k1))
		}
	default:
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	return nil
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(p)
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, p)
}

// PrivateKey holds exactly one of the supported private key types.
type PrivateKey struct {
	Ed25519   []byte
	Secp256k1 []byte
}

var _ Signer = (*PrivateKey)(nil)

// unwrap a PrivateKey struct into a Signer interface
func (p *PrivateKey) unwrap() Signer {
	switch {
	case p == nil:
		return nil
	case len(p.Ed25519) != 0:
		return ed25519PrivKey(p.Ed25519)
	case len(p.Secp256k1) != 0:
		return secp256k1PrivKey(p.Secp256k1)
	default:
		return nil
	}
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	in := p.unwrap()
	if in == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "private key")
	}
	return in.Sign(message)
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	in := p.unwrap()
	if in == nil {
		return nil
	}
	return in.PublicKey()
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(p)
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, p)
}
