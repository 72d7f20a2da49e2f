package main

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/crypto"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/spf13/cobra"
)

// keyJSON is the output of the keygen command. Identity is the value
// that must be used as the owner of a multisig config.
type keyJSON struct {
	Type       string         `json:"type"`
	PrivateKey weave.HexBytes `json:"private_key"`
	PublicKey  weave.HexBytes `json:"public_key"`
	Identity   weave.HexBytes `json:"identity"`
}

// NewKeygenCommand returns a command that generates an owner key.
func NewKeygenCommand() *cobra.Command {
	var keyType string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new owner key.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var key *crypto.PrivateKey
			switch keyType {
			case "ed25519":
				key = crypto.GenPrivKeyEd25519()
			case "secp256k1":
				key = crypto.GenPrivKeySecp256k1()
			default:
				return errors.Wrapf(errors.ErrType, "unknown key type %q", keyType)
			}
			out, err := describeKey(key)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&keyType, "scheme", "ed25519", "Key type: ed25519 or secp256k1.")
	return cmd
}

func describeKey(key *crypto.PrivateKey) (*keyJSON, error) {
	raw, err := key.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	pub := key.PublicKey()
	if pub == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "private key")
	}
	if len(pub.Ed25519) != 0 {
		return &keyJSON{
			Type:       "ed25519",
			PrivateKey: raw,
			PublicKey:  pub.Ed25519,
			Identity:   pub.Ed25519,
		}, nil
	}
	addr, err := crypto.EthAddress(pub.Secp256k1)
	if err != nil {
		return nil, err
	}
	return &keyJSON{
		Type:       "secp256k1",
		PrivateKey: raw,
		PublicKey:  pub.Secp256k1,
		Identity:   addr,
	}, nil
}

// loadKey decodes a hex encoded private key as printed by keygen.
func loadKey(value string) (*crypto.PrivateKey, error) {
	raw, err := decodeHex("key", value)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "key")
	}
	var key crypto.PrivateKey
	if err := key.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "key: %s", err)
	}
	if key.PublicKey() == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "key")
	}
	return &key, nil
}
