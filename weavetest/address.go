package weavetest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/stateless-weave"
)

// ParseAddress takes a weave address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// weave.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) weave.Address {
	t.Helper()

	addr, err := weave.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// RandomAddr returns a valid address of a random content.
func RandomAddr(t testing.TB) weave.Address {
	t.Helper()

	raw := make([]byte, weave.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot read random data: %s", err)
	}
	return weave.Address(raw)
}
