package sigs

import (
	"testing"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/crypto"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	bz := []byte("foobar")
	tx := NewStdTx(bz)

	bz2 := []byte("blast")
	tx2 := NewStdTx(bz2)

	// make sure the values out are sensible
	tbz, err := tx.GetSignBytes()
	assert.NoError(t, err)
	assert.Equal(t, bz, tbz)
	tbz2, err := tx2.GetSignBytes()
	assert.NoError(t, err)
	assert.Equal(t, bz2, tbz2)

	// make sure sign bytes match tx
	chainID := "test-sign-bytes"
	c1, err := BuildSignBytesTx(tx, chainID)
	require.NoError(t, err)
	c1a, err := BuildSignBytes(bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, c1, c1a)
	assert.NotEqual(t, bz, c1)
	assert.Len(t, c1, 64)

	// make sure sign bytes change on tx and chain_id
	ct, err := BuildSignBytes(bz2, chainID)
	require.NoError(t, err)
	assert.NotEqual(t, c1, ct)
	c2, err := BuildSignBytes(bz, chainID+"2")
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)

	_, err = BuildSignBytes(bz, "bad")
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()
	perm := priv.PublicKey().Condition()

	chainID := "emo-music-2345"
	bz := []byte("my special valentine")
	tx := NewStdTx(bz)

	sig, err := SignTx(priv, tx, chainID)
	require.NoError(t, err)

	// signing should be deterministic
	sigA, err := SignTx(priv, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, sig, sigA)

	sign, err := VerifySignature(sig, bz, chainID)
	assert.NoError(t, err)
	assert.Equal(t, perm, sign)

	// empty sig
	_, err = VerifySignature(new(StdSignature), bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// different chain doesn't match
	_, err = VerifySignature(sig, bz, "metal-chain")
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// doesn't match on bad sig
	bad := &StdSignature{Pubkey: sig.Pubkey, Signature: append([]byte{}, sig.Signature...)}
	copy(bad.Signature, []byte{42, 17, 99})
	_, err = VerifySignature(bad, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestVerifySecp256k1Signature(t *testing.T) {
	priv := crypto.GenPrivKeySecp256k1()
	chainID := "eth-flavour"
	tx := NewStdTx([]byte("keccak me"))

	sig, err := SignTx(priv, tx, chainID)
	require.NoError(t, err)

	cond, err := VerifySignature(sig, []byte("keccak me"), chainID)
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey().Condition(), cond)
}

func TestVerifyTxSignatures(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()
	addr := priv.PublicKey().Condition()
	priv2 := crypto.GenPrivKeyEd25519()
	addr2 := priv2.PublicKey().Condition()

	chainID := "hot_summer_days"
	tx := NewStdTx([]byte("ice cream"))
	tx2 := NewStdTx([]byte(chainID))

	sig, err := SignTx(priv, tx, chainID)
	require.NoError(t, err)
	sig2, err := SignTx(priv2, tx, chainID)
	require.NoError(t, err)
	// and a signature of wrong info
	badSig, err := SignTx(priv, tx2, chainID)
	require.NoError(t, err)

	// no signers
	signers, err := VerifyTxSignatures(tx, chainID)
	assert.NoError(t, err)
	assert.Empty(t, signers)

	// bad signers
	tx.Signatures = []*StdSignature{badSig}
	_, err = VerifyTxSignatures(tx, chainID)
	assert.Error(t, err)

	// some signers
	tx.Signatures = []*StdSignature{sig}
	signers, err = VerifyTxSignatures(tx, chainID)
	assert.NoError(t, err)
	if assert.Equal(t, 1, len(signers)) {
		assert.Equal(t, addr, signers[0])
	}

	tx.Signatures = []*StdSignature{sig, sig2}
	signers, err = VerifyTxSignatures(tx, chainID)
	assert.NoError(t, err)
	if assert.Equal(t, 2, len(signers)) {
		assert.Equal(t, addr, signers[0])
		assert.Equal(t, addr2, signers[1])
	}

	// one bad signature fails all
	tx.Signatures = []*StdSignature{sig, badSig}
	_, err = VerifyTxSignatures(tx, chainID)
	assert.Error(t, err)
}

//----- mock objects for testing...

type StdTx struct {
	*weavetest.Tx
	payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ weave.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	ix := weavetest.Instruction("demo", payload)
	return &StdTx{Tx: weavetest.NewTx(ix), payload: payload}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}
