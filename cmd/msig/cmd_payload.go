package main

import (
	"encoding/json"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/x/multisig"
	"github.com/iov-one/stateless-weave/x/sigverify"
	"github.com/spf13/cobra"
)

type payloadJSON struct {
	Program weave.HexBytes `json:"program"`
	Data    weave.HexBytes `json:"data"`
}

// NewEncodeCommand returns a command that reads a JSON list of entries
// from the standard input and prints the verification instruction.
func NewEncodeCommand() *cobra.Command {
	var schemeName string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode entries read from stdin into a verification instruction.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := multisig.ParseScheme(schemeName)
			if err != nil {
				return err
			}
			var input []entryJSON
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&input); err != nil {
				return errors.Wrapf(errors.ErrInput, "cannot read entries: %s", err)
			}
			data, err := encodeEntries(scheme, input)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), payloadJSON{
				Program: weave.HexBytes(scheme.VerificationProgram()),
				Data:    data,
			})
		},
	}
	cmd.Flags().StringVar(&schemeName, "scheme", "ed25519", "Multisig scheme: ed25519 or eth.")
	return cmd
}

// NewDecodeCommand returns a command that prints the entries of a
// verification payload.
func NewDecodeCommand() *cobra.Command {
	var schemeName string
	cmd := &cobra.Command{
		Use:   "decode <hex data>",
		Short: "Decode a verification payload into a JSON list of entries.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := multisig.ParseScheme(schemeName)
			if err != nil {
				return err
			}
			data, err := decodeHex("data", args[0])
			if err != nil {
				return err
			}
			entries, err := scheme.Layout().Decode(data)
			if err != nil {
				return err
			}
			out := make([]entryJSON, len(entries))
			for i, e := range entries {
				out[i] = toEntryJSON(e)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&schemeName, "scheme", "ed25519", "Multisig scheme: ed25519 or eth.")
	return cmd
}

func encodeEntries(scheme multisig.Scheme, input []entryJSON) ([]byte, error) {
	layout := scheme.Layout()
	entries := make([]sigverify.Entry, 0, len(input))
	for _, e := range input {
		entries = append(entries, e.entry())
	}
	return layout.Encode(entries)
}
