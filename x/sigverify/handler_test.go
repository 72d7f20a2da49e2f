package sigverify

import (
	"context"
	"testing"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/crypto"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/store"
	"github.com/iov-one/stateless-weave/weavetest"
	"github.com/iov-one/stateless-weave/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationPrograms(t *testing.T) {
	msg := []byte("a digest, usually 32 bytes long")

	edKeys := []*crypto.PrivateKey{crypto.GenPrivKeyEd25519(), crypto.GenPrivKeyEd25519()}
	ethKeys := []*crypto.PrivateKey{crypto.GenPrivKeySecp256k1(), crypto.GenPrivKeySecp256k1()}

	edEntry := func(key *crypto.PrivateKey, msg []byte) Entry {
		e, err := NewEd25519Entry(key, msg)
		require.NoError(t, err)
		return e
	}
	ethEntry := func(key *crypto.PrivateKey, msg []byte) Entry {
		e, err := NewSecp256k1Entry(key, msg)
		require.NoError(t, err)
		return e
	}
	encode := func(l Layout, entries ...Entry) []byte {
		raw, err := l.Encode(entries)
		require.NoError(t, err)
		return raw
	}

	tampered := edEntry(edKeys[1], msg)
	tampered.Message = []byte("something else")

	wrongAddr := ethEntry(ethKeys[0], msg)
	wrongAddr.Identity = ethEntry(ethKeys[1], msg).Identity

	flippedRecovery := ethEntry(ethKeys[0], msg)
	flippedRecovery.RecoveryID ^= 1

	cases := map[string]struct {
		handler Handler
		ix      *weave.Instruction
		wantErr *errors.Error
	}{
		"ed25519 batch": {
			handler: NewEd25519Handler(),
			ix: &weave.Instruction{
				ProgramID: Ed25519ProgramID,
				Data:      encode(Ed25519Layout, edEntry(edKeys[0], msg), edEntry(edKeys[1], msg)),
			},
		},
		"ed25519 empty batch": {
			handler: NewEd25519Handler(),
			ix:      &weave.Instruction{ProgramID: Ed25519ProgramID, Data: encode(Ed25519Layout)},
		},
		"ed25519 signature of another message": {
			handler: NewEd25519Handler(),
			ix: &weave.Instruction{
				ProgramID: Ed25519ProgramID,
				Data:      encode(Ed25519Layout, edEntry(edKeys[0], msg), tampered),
			},
			wantErr: ErrInvalidSignature,
		},
		"ed25519 malformed": {
			handler: NewEd25519Handler(),
			ix:      &weave.Instruction{ProgramID: Ed25519ProgramID, Data: []byte{1, 0, 2}},
			wantErr: ErrMalformedVerificationData,
		},
		"accounts are not accepted": {
			handler: NewEd25519Handler(),
			ix: &weave.Instruction{
				ProgramID: Ed25519ProgramID,
				Accounts:  []weave.AccountMeta{{Address: weavetest.RandomAddr(t)}},
				Data:      encode(Ed25519Layout, edEntry(edKeys[0], msg)),
			},
			wantErr: errors.ErrInput,
		},
		"secp256k1 batch": {
			handler: NewSecp256k1Handler(),
			ix: &weave.Instruction{
				ProgramID: Secp256k1ProgramID,
				Data:      encode(Secp256k1Layout, ethEntry(ethKeys[0], msg), ethEntry(ethKeys[1], msg)),
			},
		},
		"secp256k1 address of another key": {
			handler: NewSecp256k1Handler(),
			ix: &weave.Instruction{
				ProgramID: Secp256k1ProgramID,
				Data:      encode(Secp256k1Layout, wrongAddr),
			},
			wantErr: ErrInvalidSignature,
		},
		"secp256k1 wrong recovery id": {
			handler: NewSecp256k1Handler(),
			ix: &weave.Instruction{
				ProgramID: Secp256k1ProgramID,
				Data:      encode(Secp256k1Layout, ethEntry(ethKeys[1], msg), flippedRecovery),
			},
			wantErr: ErrInvalidSignature,
		},
		"secp256k1 data in ed25519 format": {
			handler: NewSecp256k1Handler(),
			ix: &weave.Instruction{
				ProgramID: Secp256k1ProgramID,
				Data:      encode(Ed25519Layout, edEntry(edKeys[0], msg)),
			},
			wantErr: ErrMalformedVerificationData,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			tx := weavetest.NewTx(tc.ix)
			ctx := context.Background()

			_, err := tc.handler.Check(ctx, db, tx)
			assert.IsErr(t, tc.wantErr, err)
			_, err = tc.handler.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestEntryBuilders(t *testing.T) {
	msg := []byte("message")

	ed := crypto.GenPrivKeyEd25519()
	e, err := NewEd25519Entry(ed, msg)
	require.NoError(t, err)
	assert.Equal(t, ed.PublicKey().Ed25519, e.Identity)
	assert.Equal(t, true, ed.PublicKey().Verify(msg, e.Signature))

	_, err = NewSecp256k1Entry(ed, msg)
	assert.IsErr(t, errors.ErrType, err)

	eth := crypto.GenPrivKeySecp256k1()
	e, err = NewSecp256k1Entry(eth, msg)
	require.NoError(t, err)
	addr, err := crypto.EthAddress(eth.PublicKey().Secp256k1)
	require.NoError(t, err)
	assert.Equal(t, addr, e.Identity)
	assert.Equal(t, 64, len(e.Signature))
	assert.Equal(t, true, e.RecoveryID <= 1)

	_, err = NewEd25519Entry(eth, msg)
	assert.IsErr(t, errors.ErrType, err)
}

func TestDecodeInstruction(t *testing.T) {
	e, err := NewEd25519Entry(crypto.GenPrivKeyEd25519(), []byte("x"))
	require.NoError(t, err)
	ix, err := NewEd25519Instruction(e)
	require.NoError(t, err)
	assert.Equal(t, Ed25519ProgramID, ix.ProgramID)
	assert.Equal(t, 0, len(ix.Accounts))

	got, err := DecodeInstruction(ix)
	require.NoError(t, err)
	assertEntries(t, []Entry{e}, got)

	_, err = DecodeInstruction(weavetest.Instruction("other", ix.Data))
	assert.IsErr(t, errors.ErrNotFound, err)
}
