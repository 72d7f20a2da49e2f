package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/sha3"
)

// Sha256 returns the sha256 digest of all given chunks.
func Sha256(chunks ...[]byte) []byte {
	h := sha256.New()
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(nil)
}

// Keccak256 returns the legacy keccak256 digest of all given chunks, as
// used by ethereum.
func Keccak256(chunks ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(nil)
}
