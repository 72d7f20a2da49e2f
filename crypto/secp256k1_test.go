package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/stateless-weave/weavetest/assert"
)

func TestSecp256k1Signing(t *testing.T) {
	private := GenPrivKeySecp256k1()
	public := private.PublicKey()
	assert.Nil(t, public.Validate())

	msg := []byte("foobar")
	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	assert.Equal(t, Secp256k1SignatureSize, len(sig))
	if v := sig[64]; v != 0 && v != 1 {
		t.Fatalf("unexpected recovery id: %d", v)
	}

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg, sig[:64]) {
		t.Fatal("cannot verify a signature without the recovery id")
	}
	if public.Verify([]byte("other"), sig) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg, sig[:10]) {
		t.Fatal("verified a truncated signature")
	}
}

func TestSecp256k1Recover(t *testing.T) {
	private := GenPrivKeySecp256k1()
	public := private.PublicKey()

	addr, err := EthAddress(public.Secp256k1)
	assert.Nil(t, err)
	assert.Equal(t, EthAddressSize, len(addr))
	assert.Equal(t, true, IsEthAddress(public.Secp256k1, addr))

	msg := []byte("recover me")
	sig, err := private.Sign(msg)
	assert.Nil(t, err)

	got, err := RecoverEthAddress(Keccak256(msg), sig)
	assert.Nil(t, err)
	assert.Equal(t, addr, got)

	// A different message recovers a different key.
	other, err := RecoverEthAddress(Keccak256([]byte("something else")), sig)
	if err == nil && bytes.Equal(other, addr) {
		t.Fatal("recovered the signer address for a different message")
	}

	_, err = RecoverEthAddress(Keccak256(msg), sig[:64])
	if err == nil {
		t.Fatal("signature without the recovery id must not recover")
	}
}

func TestSecp256k1Condition(t *testing.T) {
	pub := GenPrivKeySecp256k1().PublicKey()
	addr, err := EthAddress(pub.Secp256k1)
	assert.Nil(t, err)

	cond := pub.Condition()
	assert.Nil(t, cond.Validate())
	_, typ, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "secp256k1", typ)
	assert.Equal(t, addr, data)
}

func TestHashes(t *testing.T) {
	cases := map[string]struct {
		fn   func(...[]byte) []byte
		in   [][]byte
		want string
	}{
		"sha256 of empty input": {
			fn:   Sha256,
			want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		"sha256 over chunks": {
			fn:   Sha256,
			in:   [][]byte{[]byte("a"), []byte("bc")},
			want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		"keccak256 of empty input": {
			fn:   Keccak256,
			want: "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := hex.EncodeToString(tc.fn(tc.in...))
			assert.Equal(t, tc.want, got)
		})
	}
}
