package main

import (
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/x/sigverify"
	"github.com/spf13/cobra"
)

// NewSignCommand returns a command that signs a digest and prints the
// verification entry.
func NewSignCommand() *cobra.Command {
	var (
		keyHex  string
		message string
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a digest and print the verification entry.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := loadKey(keyHex)
			if err != nil {
				return err
			}
			msg, err := decodeHex("message", message)
			if err != nil {
				return err
			}
			if len(msg) == 0 {
				return errors.Wrap(errors.ErrEmpty, "message")
			}
			newEntry := sigverify.NewEd25519Entry
			if len(key.PublicKey().Ed25519) == 0 {
				newEntry = sigverify.NewSecp256k1Entry
			}
			entry, err := newEntry(key, msg)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), toEntryJSON(entry))
		},
	}
	cmd.Flags().StringVar(&keyHex, "key", "", "Hex encoded private key, as printed by keygen.")
	cmd.Flags().StringVar(&message, "message", "", "Hex encoded digest to sign.")
	return cmd
}
