package crypto

import (
	"github.com/iov-one/stateless-weave"
	"golang.org/x/crypto/ed25519"
)

const (
	// Ed25519PublicKeySize is the size of an ed25519 public key.
	Ed25519PublicKeySize = ed25519.PublicKeySize
	// Ed25519SignatureSize is the size of an ed25519 signature.
	Ed25519SignatureSize = ed25519.SignatureSize
)

type ed25519PubKey []byte

var _ PubKey = ed25519PubKey(nil)

// Verify verifies the signature was created with this message and public key
func (p ed25519PubKey) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a weave condition
func (p ed25519PubKey) Condition() weave.Condition {
	return weave.NewCondition(ExtensionName, "ed25519", p)
}

type ed25519PrivKey []byte

var _ Signer = ed25519PrivKey(nil)

// Sign returns a matching signature for this private key
func (p ed25519PrivKey) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(ed25519.PrivateKey(p), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p ed25519PrivKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}
