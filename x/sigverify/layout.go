package sigverify

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/stateless-weave/errors"
)

// MaxEntries is the maximum number of entries a single verification
// instruction can hold.
const MaxEntries = math.MaxUint8

// Layout describes the binary format of a verification instruction. Both
// supported formats share the same structure and only differ in the field
// widths and the order of the data section.
type Layout struct {
	// Name is a human readable name of the format.
	Name string
	// IdentitySize is the size of a public key or an address.
	IdentitySize int
	// SignatureSize is the size of a signature, without the recovery id.
	SignatureSize int
	// RecoverySize is the size of the recovery id stored directly after
	// each signature. Either 0 or 1.
	RecoverySize int
	// Padding is the number of zero bytes following the count byte.
	Padding int
	// IndexSize is the width of the instruction index fields. Either 1
	// or 2.
	IndexSize int
	// Sentinel is the instruction index value that references the
	// verification instruction itself.
	Sentinel uint16
	// IdentitiesFirst is true if identities are stored before signatures
	// in the data section.
	IdentitiesFirst bool
}

var (
	// Ed25519Layout is the format of the ed25519 verification program.
	Ed25519Layout = Layout{
		Name:          "ed25519",
		IdentitySize:  32,
		SignatureSize: 64,
		Padding:       1,
		IndexSize:     2,
		Sentinel:      math.MaxUint16,
	}

	// Secp256k1Layout is the format of the secp256k1 verification
	// program. Identities are ethereum addresses.
	Secp256k1Layout = Layout{
		Name:            "secp256k1",
		IdentitySize:    20,
		SignatureSize:   64,
		RecoverySize:    1,
		IndexSize:       1,
		Sentinel:        0,
		IdentitiesFirst: true,
	}
)

// RowSize returns the size of a single offset table row.
func (l Layout) RowSize() int {
	// sig_offset, key_offset, msg_offset, msg_len and three index fields.
	return 4*2 + 3*l.IndexSize
}

// HeaderSize returns the size of the count byte, the padding and the offset
// table for n entries.
func (l Layout) HeaderSize(n int) int {
	return 1 + l.Padding + n*l.RowSize()
}

// Entry is a single verification request.
type Entry struct {
	// Signature is the raw signature, without the recovery id.
	Signature []byte
	// RecoveryID is only used by layouts that store recovery metadata.
	RecoveryID uint8
	// Identity is either a public key or an address of the signer.
	Identity []byte
	// Message is the signed content.
	Message []byte
}

func (l Layout) validateEntry(e Entry) error {
	if len(e.Signature) != l.SignatureSize {
		return errors.Wrapf(errors.ErrInput, "signature must be %d bytes, got %d", l.SignatureSize, len(e.Signature))
	}
	if len(e.Identity) != l.IdentitySize {
		return errors.Wrapf(errors.ErrInput, "identity must be %d bytes, got %d", l.IdentitySize, len(e.Identity))
	}
	if l.RecoverySize == 0 && e.RecoveryID != 0 {
		return errors.Wrap(errors.ErrInput, "recovery id not supported")
	}
	return nil
}

// Encode serializes entries into the instruction data of this layout. The
// data section is filled in the layout's order and every index field is set
// to the sentinel.
func (l Layout) Encode(entries []Entry) ([]byte, error) {
	n := len(entries)
	if n > MaxEntries {
		return nil, errors.Wrapf(errors.ErrInput, "too many entries: %d", n)
	}
	msgTotal := 0
	for i, e := range entries {
		if err := l.validateEntry(e); err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		if len(e.Message) > math.MaxUint16 {
			return nil, errors.Wrapf(errors.ErrInput, "entry %d: message too big", i)
		}
		msgTotal += len(e.Message)
	}

	sigStride := l.SignatureSize + l.RecoverySize
	header := l.HeaderSize(n)
	sigStart, idStart := header, header+n*sigStride
	if l.IdentitiesFirst {
		idStart, sigStart = header, header+n*l.IdentitySize
	}
	msgStart := header + n*(sigStride+l.IdentitySize)
	// Every offset must fit into a u16, the last message offset is the
	// largest one.
	if last := msgStart + msgTotal; n > 0 && last-len(entries[n-1].Message) > math.MaxUint16 {
		return nil, errors.Wrap(errors.ErrInput, "entries too big")
	}

	out := make([]byte, msgStart+msgTotal)
	out[0] = byte(n)
	msgOffset := msgStart
	for i, e := range entries {
		sigOffset := sigStart + i*sigStride
		idOffset := idStart + i*l.IdentitySize

		row := out[1+l.Padding+i*l.RowSize():]
		row = l.putU16(row, uint16(sigOffset))
		row = l.putIndex(row)
		row = l.putU16(row, uint16(idOffset))
		row = l.putIndex(row)
		row = l.putU16(row, uint16(msgOffset))
		row = l.putU16(row, uint16(len(e.Message)))
		l.putIndex(row)

		copy(out[sigOffset:], e.Signature)
		if l.RecoverySize != 0 {
			out[sigOffset+l.SignatureSize] = e.RecoveryID
		}
		copy(out[idOffset:], e.Identity)
		copy(out[msgOffset:], e.Message)
		msgOffset += len(e.Message)
	}
	return out, nil
}

func (l Layout) putU16(b []byte, v uint16) []byte {
	binary.LittleEndian.PutUint16(b, v)
	return b[2:]
}

func (l Layout) putIndex(b []byte) []byte {
	if l.IndexSize == 1 {
		b[0] = byte(l.Sentinel)
		return b[1:]
	}
	return l.putU16(b, l.Sentinel)
}

// Decode reads all entries of a verification instruction by following its
// offset table. Any inconsistency results in ErrMalformedVerificationData.
// Returned entries do not share memory with data.
func (l Layout) Decode(data []byte) ([]Entry, error) {
	if len(data) < 1+l.Padding {
		return nil, errors.Wrap(ErrMalformedVerificationData, "missing header")
	}
	for _, p := range data[1 : 1+l.Padding] {
		if p != 0 {
			return nil, errors.Wrap(ErrMalformedVerificationData, "non zero padding")
		}
	}
	n := int(data[0])
	if len(data) < l.HeaderSize(n) {
		return nil, errors.Wrapf(ErrMalformedVerificationData, "header of %d entries does not fit %d bytes", n, len(data))
	}

	entries := make([]Entry, n)
	for i := range entries {
		r := rowReader{layout: l, b: data[1+l.Padding+i*l.RowSize():]}
		sigOffset := r.u16()
		sigIx := r.index()
		idOffset := r.u16()
		idIx := r.index()
		msgOffset := r.u16()
		msgLen := r.u16()
		msgIx := r.index()

		if sigIx != l.Sentinel || idIx != l.Sentinel || msgIx != l.Sentinel {
			return nil, errors.Wrapf(ErrMalformedVerificationData, "entry %d references another instruction", i)
		}
		sig, err := field(data, sigOffset, l.SignatureSize+l.RecoverySize)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d signature", i)
		}
		id, err := field(data, idOffset, l.IdentitySize)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d identity", i)
		}
		msg, err := field(data, msgOffset, msgLen)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d message", i)
		}

		entries[i] = Entry{
			Signature: sig[:l.SignatureSize],
			Identity:  id,
			Message:   msg,
		}
		if l.RecoverySize != 0 {
			entries[i].RecoveryID = sig[l.SignatureSize]
		}
	}
	return entries, nil
}

// field returns a copy of the size bytes long range starting at offset.
func field(data []byte, offset, size int) ([]byte, error) {
	end := offset + size
	if end > len(data) {
		return nil, errors.Wrapf(ErrMalformedVerificationData, "range %d:%d out of %d bytes", offset, end, len(data))
	}
	return append([]byte{}, data[offset:end]...), nil
}

// rowReader reads an offset table row. Bounds are guaranteed by the header
// size check.
type rowReader struct {
	layout Layout
	b      []byte
}

func (r *rowReader) u16() int {
	v := binary.LittleEndian.Uint16(r.b)
	r.b = r.b[2:]
	return int(v)
}

func (r *rowReader) index() uint16 {
	if r.layout.IndexSize == 1 {
		v := r.b[0]
		r.b = r.b[1:]
		return uint16(v)
	}
	return uint16(r.u16())
}
