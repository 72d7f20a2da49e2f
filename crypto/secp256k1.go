package crypto

import (
	"bytes"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
)

const (
	// Secp256k1PublicKeySize is the size of an uncompressed public key.
	Secp256k1PublicKeySize = 65
	// Secp256k1SignatureSize is the size of a recoverable signature in the
	// R || S || V format.
	Secp256k1SignatureSize = ethcrypto.SignatureLength
	// EthAddressSize is the size of an ethereum address.
	EthAddressSize = 20
)

type secp256k1PubKey []byte

var _ PubKey = secp256k1PubKey(nil)

// Verify checks that the signature of the keccak256 digest of the message
// was created with this key. Both the 64 byte and the recoverable 65 byte
// signature formats are accepted.
func (p secp256k1PubKey) Verify(message, sig []byte) bool {
	if len(sig) == Secp256k1SignatureSize {
		sig = sig[:Secp256k1SignatureSize-1]
	}
	if len(sig) != Secp256k1SignatureSize-1 {
		return false
	}
	return ethcrypto.VerifySignature(p, Keccak256(message), sig)
}

// Condition encodes the ethereum address of the key into a weave condition
func (p secp256k1PubKey) Condition() weave.Condition {
	addr, err := EthAddress(p)
	if err != nil {
		return nil
	}
	return weave.NewCondition(ExtensionName, "secp256k1", addr)
}

type secp256k1PrivKey []byte

var _ Signer = secp256k1PrivKey(nil)

// Sign returns a recoverable signature of the keccak256 digest of the
// message. The recovery id is stored in the last byte and is either 0 or 1.
func (p secp256k1PrivKey) Sign(message []byte) ([]byte, error) {
	key, err := ethcrypto.ToECDSA(p)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "secp256k1 key: %s", err)
	}
	sig, err := ethcrypto.Sign(Keccak256(message), key)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "sign: %s", err)
	}
	return sig, nil
}

// PublicKey returns the corresponding PublicKey
func (p secp256k1PrivKey) PublicKey() *PublicKey {
	key, err := ethcrypto.ToECDSA(p)
	if err != nil {
		return nil
	}
	return &PublicKey{Secp256k1: ethcrypto.FromECDSAPub(&key.PublicKey)}
}

// GenPrivKeySecp256k1 returns a random new private key
func GenPrivKeySecp256k1() *PrivateKey {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Secp256k1: ethcrypto.FromECDSA(key)}
}

// EthAddress returns the ethereum address of an uncompressed secp256k1
// public key.
func EthAddress(pub []byte) ([]byte, error) {
	key, err := ethcrypto.UnmarshalPubkey(pub)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "secp256k1 public key: %s", err)
	}
	return ethcrypto.PubkeyToAddress(*key).Bytes(), nil
}

// RecoverEthAddress returns the ethereum address of the key that created
// given recoverable signature of the hash. The recovery id must be 0 or 1.
func RecoverEthAddress(hash, sig []byte) ([]byte, error) {
	if len(sig) != Secp256k1SignatureSize {
		return nil, errors.Wrapf(errors.ErrInput, "signature length %d", len(sig))
	}
	pub, err := ethcrypto.Ecrecover(hash, sig)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "recover: %s", err)
	}
	return EthAddress(pub)
}

// IsEthAddress returns true if the public key belongs to the address.
func IsEthAddress(pub, addr []byte) bool {
	got, err := EthAddress(pub)
	if err != nil {
		return false
	}
	return bytes.Equal(got, addr)
}
