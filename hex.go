package weave

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/stateless-weave/errors"
)

// HexBytes is a byte slice that is rendered as upper case hex in JSON,
// overriding the standard base64 []byte encoding. It is used for opaque
// payloads such as instruction data and digests.
type HexBytes []byte

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return marshalHex(h)
}

func (h *HexBytes) UnmarshalJSON(raw []byte) error {
	return unmarshalHex((*[]byte)(h), raw)
}

func (h HexBytes) String() string {
	return strings.ToUpper(hex.EncodeToString(h))
}

func unmarshalHex(dst *[]byte, src []byte) (err error) {
	var s string
	err = json.Unmarshal(src, &s)
	if err != nil {
		return errors.Wrap(err, "parse string")
	}
	// and interpret that string as hex
	*dst, err = hex.DecodeString(s)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "hex: %s", err)
	}
	return nil
}

func marshalHex(bytes []byte) ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(bytes))
	return json.Marshal(s)
}
