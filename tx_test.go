package weave

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/weavetest/assert"
)

type demoTx struct {
	ixs []*Instruction
	err error
}

func (demoTx) Marshal() ([]byte, error) { return nil, nil }
func (demoTx) Unmarshal([]byte) error   { return nil }
func (tx demoTx) GetInstructions() ([]*Instruction, error) {
	return tx.ixs, tx.err
}

func TestInstructionSerialization(t *testing.T) {
	ix := &Instruction{
		ProgramID: ProgramID("demo"),
		Accounts: []AccountMeta{
			{Address: NewAddress([]byte("a")), IsSigner: true},
			{Address: NewAddress([]byte("b")), IsWritable: true},
		},
		Data: []byte("payload"),
	}
	raw, err := ix.Marshal()
	assert.Nil(t, err)

	var got Instruction
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, ix, &got)
	assert.Nil(t, got.Validate())

	signers := got.Signers()
	assert.Equal(t, 1, len(signers))
	if !signers[0].Equals(NewAddress([]byte("a"))) {
		t.Fatalf("unexpected signer: %s", signers[0])
	}
}

func TestInstructionValidate(t *testing.T) {
	cases := map[string]struct {
		ix      *Instruction
		wantErr *errors.Error
	}{
		"valid": {
			ix: &Instruction{ProgramID: ProgramID("demo")},
		},
		"nil": {
			ix:      nil,
			wantErr: errors.ErrEmpty,
		},
		"missing program": {
			ix:      &Instruction{Data: []byte("x")},
			wantErr: errors.ErrInput,
		},
		"short account address": {
			ix: &Instruction{
				ProgramID: ProgramID("demo"),
				Accounts:  []AccountMeta{{Address: Address("short")}},
			},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.ix.Validate())
		})
	}
}

func TestLoadInstruction(t *testing.T) {
	one := &Instruction{ProgramID: ProgramID("one")}
	two := &Instruction{ProgramID: ProgramID("two")}

	got, err := LoadInstruction(demoTx{ixs: []*Instruction{one}})
	assert.Nil(t, err)
	assert.Equal(t, one, got)

	_, err = LoadInstruction(demoTx{ixs: []*Instruction{one, two}})
	assert.IsErr(t, errors.ErrHuman, err)

	_, err = LoadInstruction(demoTx{err: errors.ErrMsg})
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestInstructionAt(t *testing.T) {
	ixs := []*Instruction{
		{ProgramID: ProgramID("first"), Data: []byte{1}},
		{ProgramID: ProgramID("second"), Data: []byte{2}},
		{ProgramID: ProgramID("third"), Data: []byte{3}},
	}

	_, err := InstructionAt(context.Background(), 0)
	assert.IsErr(t, errors.ErrNotFound, err)

	ctx := WithInstructions(context.Background(), ixs, 1)
	idx, ok := CurrentInstructionIndex(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, 1, idx)

	cases := map[string]struct {
		relative int
		wantData []byte
		wantErr  *errors.Error
	}{
		"previous": {relative: -1, wantData: []byte{1}},
		"current":  {relative: 0, wantData: []byte{2}},
		"next":     {relative: 1, wantData: []byte{3}},
		"before the first": {
			relative: -2,
			wantErr:  errors.ErrNotFound,
		},
		"after the last": {
			relative: 2,
			wantErr:  errors.ErrNotFound,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ix, err := InstructionAt(ctx, tc.relative)
			assert.IsErr(t, tc.wantErr, err)
			if err == nil && !bytes.Equal(ix.Data, tc.wantData) {
				t.Fatalf("unexpected instruction: %X", ix.Data)
			}
		})
	}
}
