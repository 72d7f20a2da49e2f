package weave

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexBytesJSON(t *testing.T) {
	cases := map[string]struct {
		orig    HexBytes
		ser     string
		invalid string
	}{
		"short":     {orig: HexBytes{0x01, 0x02}, ser: `"0102"`, invalid: `"012"`},
		"uppercase": {orig: HexBytes{0xFF, 0x14, 0x56}, ser: `"FF1456"`, invalid: `FF1456`},
		"empty":     {orig: HexBytes{}, ser: `""`, invalid: `"`},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			bz, err := json.Marshal(tc.orig)
			require.NoError(t, err)
			assert.Equal(t, tc.ser, string(bz))

			var in HexBytes
			require.NoError(t, json.Unmarshal([]byte(tc.ser), &in))
			assert.Equal(t, []byte(tc.orig), []byte(in))

			assert.Error(t, json.Unmarshal([]byte(tc.invalid), &in))
		})
	}
}

func TestHexBytesString(t *testing.T) {
	assert.Equal(t, "CAFE", HexBytes{0xca, 0xfe}.String())
}
