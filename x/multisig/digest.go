package multisig

import (
	"encoding/binary"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
)

// DigestPreimage serializes a forwarded call into the bytes that are hashed
// and signed by the owners:
//
//	[32 authority][8 nonce, little endian]
//	per account: [32 address][1 is_signer][1 is_writable]
//	[32 target program][instruction data]
//
// Accounts are serialized in the given order. The instruction data is not
// length prefixed because it is the last field.
func DigestPreimage(authority weave.Address, nonce uint64, accounts []weave.AccountMeta, target weave.Address, data []byte) ([]byte, error) {
	if err := authority.Validate(); err != nil {
		return nil, errors.Wrap(err, "authority")
	}
	if err := target.Validate(); err != nil {
		return nil, errors.Wrap(err, "target program")
	}
	for i, a := range accounts {
		if err := a.Address.Validate(); err != nil {
			return nil, errors.Wrapf(err, "account %d", i)
		}
	}

	size := weave.AddressLength + 8 + len(accounts)*(weave.AddressLength+2) + weave.AddressLength + len(data)
	out := make([]byte, 0, size)
	out = append(out, authority...)
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], nonce)
	out = append(out, n[:]...)
	for _, a := range accounts {
		out = append(out, a.Address...)
		out = append(out, flag(a.IsSigner), flag(a.IsWritable))
	}
	out = append(out, target...)
	out = append(out, data...)
	return out, nil
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// BuildDigest returns the 32 byte digest of a forwarded call. The same
// function is used to sign a call off-chain and to verify it.
func BuildDigest(scheme Scheme, authority weave.Address, nonce uint64, accounts []weave.AccountMeta, target weave.Address, data []byte) ([]byte, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	preimage, err := DigestPreimage(authority, nonce, accounts, target, data)
	if err != nil {
		return nil, err
	}
	return scheme.Hash(preimage), nil
}
