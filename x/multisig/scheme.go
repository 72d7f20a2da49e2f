package multisig

import (
	"encoding/json"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/crypto"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/x/sigverify"
)

// Scheme is the signature scheme used by the owners of a multisig.
type Scheme int32

const (
	// SchemeEd25519 owners are ed25519 public keys. Digests are sha256
	// hashes.
	SchemeEd25519 Scheme = 1
	// SchemeEth owners are ethereum addresses of secp256k1 keys. Digests
	// are keccak256 hashes.
	SchemeEth Scheme = 2
)

var schemeNames = map[Scheme]string{
	SchemeEd25519: "ed25519",
	SchemeEth:     "eth",
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return "unknown"
}

// Validate returns an error if the scheme is not supported.
func (s Scheme) Validate() error {
	if _, ok := schemeNames[s]; !ok {
		return errors.Wrapf(errors.ErrType, "unknown scheme %d", s)
	}
	return nil
}

// ParseScheme returns the scheme with given name.
func ParseScheme(name string) (Scheme, error) {
	for s, n := range schemeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrType, "unknown scheme %q", name)
}

func (s Scheme) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Scheme) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	v, err := ParseScheme(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// IdentitySize returns the length of an owner identity.
func (s Scheme) IdentitySize() int {
	return s.Layout().IdentitySize
}

// Layout returns the format of the verification instruction that carries
// the owner signatures.
func (s Scheme) Layout() sigverify.Layout {
	if s == SchemeEth {
		return sigverify.Secp256k1Layout
	}
	return sigverify.Ed25519Layout
}

// VerificationProgram returns the address of the program that verifies the
// owner signatures.
func (s Scheme) VerificationProgram() weave.Address {
	if s == SchemeEth {
		return sigverify.Secp256k1ProgramID
	}
	return sigverify.Ed25519ProgramID
}

// Hash returns the digest of the preimage, using the hash function native
// to the scheme's keys.
func (s Scheme) Hash(preimage []byte) []byte {
	if s == SchemeEth {
		return crypto.Keccak256(preimage)
	}
	return crypto.Sha256(preimage)
}
