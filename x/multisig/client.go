package multisig

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/crypto"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/x/sigverify"
)

// Execution is a call that is signed off-chain by the owners of a config.
type Execution struct {
	Scheme   Scheme
	ConfigID weave.Address
	Nonce    uint64
	Target   weave.Address
	Accounts []weave.AccountMeta
	Data     []byte
}

// NewExecution returns a call to be approved by the owners of given config.
// The current nonce of the config must be used.
func NewExecution(scheme Scheme, configID weave.Address, nonce uint64, target weave.Address, accounts []weave.AccountMeta, data []byte) *Execution {
	return &Execution{
		Scheme:   scheme,
		ConfigID: configID,
		Nonce:    nonce,
		Target:   target,
		Accounts: accounts,
		Data:     data,
	}
}

// Authority returns the address the call is executed as.
func (e *Execution) Authority() weave.Address {
	return AuthorityAddress(e.ConfigID)
}

// Digest returns the digest each owner must sign.
func (e *Execution) Digest() ([]byte, error) {
	return BuildDigest(e.Scheme, e.Authority(), e.Nonce, e.Accounts, e.Target, e.Data)
}

// Sign signs the digest with all given owner keys. The returned
// instructions must be submitted together and in order.
func (e *Execution) Sign(keys ...crypto.Signer) ([]*weave.Instruction, error) {
	digest, err := e.Digest()
	if err != nil {
		return nil, err
	}
	newEntry := sigverify.NewEd25519Entry
	if e.Scheme == SchemeEth {
		newEntry = sigverify.NewSecp256k1Entry
	}
	entries := make([]sigverify.Entry, len(keys))
	for i, k := range keys {
		entries[i], err = newEntry(k, digest)
		if err != nil {
			return nil, errors.Wrapf(err, "key %d", i)
		}
	}
	return e.Instructions(entries...)
}

// Instructions returns the verification instruction holding given entries
// followed by the execute instruction. Signers are claimed in the order of
// the entries.
func (e *Execution) Instructions(entries ...sigverify.Entry) ([]*weave.Instruction, error) {
	verify, err := e.Scheme.Layout().Encode(entries)
	if err != nil {
		return nil, err
	}
	signers := make([][]byte, len(entries))
	for i, en := range entries {
		signers[i] = en.Identity
	}
	exec, err := NewExecuteInstruction(&ExecuteMsg{
		ConfigID:  e.ConfigID,
		Authority: e.Authority(),
		Target:    e.Target,
		Accounts:  e.Accounts,
		Data:      e.Data,
		Signers:   signers,
		Nonce:     e.Nonce,
	})
	if err != nil {
		return nil, err
	}
	return []*weave.Instruction{
		{ProgramID: e.Scheme.VerificationProgram(), Data: verify},
		exec,
	}, nil
}
