package main

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"strings"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/x/sigverify"
)

// entryJSON is the human readable form of a single verification entry.
type entryJSON struct {
	Signature  weave.HexBytes `json:"signature"`
	RecoveryID uint8          `json:"recovery_id,omitempty"`
	Identity   weave.HexBytes `json:"identity"`
	Message    weave.HexBytes `json:"message"`
}

func toEntryJSON(e sigverify.Entry) entryJSON {
	return entryJSON{
		Signature:  e.Signature,
		RecoveryID: e.RecoveryID,
		Identity:   e.Identity,
		Message:    e.Message,
	}
}

func (e entryJSON) entry() sigverify.Entry {
	return sigverify.Entry{
		Signature:  e.Signature,
		RecoveryID: e.RecoveryID,
		Identity:   e.Identity,
		Message:    e.Message,
	}
}

// writeJSON writes given value as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// decodeHex decodes a hex value. An optional 0x prefix is accepted.
func decodeHex(name, value string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "%s: %s", name, err)
	}
	return raw, nil
}

// parseAccount parses an account reference in the
// "<address>[,signer][,writable]" format.
func parseAccount(value string) (weave.AccountMeta, error) {
	chunks := strings.Split(value, ",")
	addr, err := weave.ParseAddress(chunks[0])
	if err != nil {
		return weave.AccountMeta{}, errors.Wrapf(err, "account %q", value)
	}
	if err := addr.Validate(); err != nil {
		return weave.AccountMeta{}, errors.Wrapf(err, "account %q", value)
	}
	meta := weave.AccountMeta{Address: addr}
	for _, mod := range chunks[1:] {
		switch mod {
		case "signer":
			meta.IsSigner = true
		case "writable":
			meta.IsWritable = true
		default:
			return weave.AccountMeta{}, errors.Wrapf(errors.ErrInput, "unknown account modifier %q", mod)
		}
	}
	return meta, nil
}
