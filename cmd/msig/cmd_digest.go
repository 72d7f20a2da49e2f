package main

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/x/multisig"
	"github.com/spf13/cobra"
)

type configJSON struct {
	ConfigID  weave.HexBytes `json:"config_id"`
	Authority weave.HexBytes `json:"authority"`
}

// NewConfigCommand returns a command that derives the addresses of a
// multisig config from its seed.
func NewConfigCommand() *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the config ID and the authority address derived from a seed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := decodeHex("seed", seed)
			if err != nil {
				return err
			}
			if len(raw) != multisig.SeedLength {
				return errors.Wrapf(errors.ErrInput, "seed must be %d bytes", multisig.SeedLength)
			}
			id := multisig.ConfigID(raw)
			return writeJSON(cmd.OutOrStdout(), configJSON{
				ConfigID:  weave.HexBytes(id),
				Authority: weave.HexBytes(multisig.AuthorityAddress(id)),
			})
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "Hex encoded config seed.")
	return cmd
}

type digestJSON struct {
	Scheme    multisig.Scheme `json:"scheme"`
	Authority weave.HexBytes  `json:"authority"`
	Nonce     uint64          `json:"nonce"`
	Digest    weave.HexBytes  `json:"digest"`
}

// NewDigestCommand returns a command that computes the digest of a call
// that the owners of a multisig must sign.
func NewDigestCommand() *cobra.Command {
	var (
		schemeName string
		configID   string
		nonce      uint64
		target     string
		accounts   []string
		data       string
	)
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Compute the digest of a forwarded call.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := multisig.ParseScheme(schemeName)
			if err != nil {
				return err
			}
			id, err := decodeHex("config", configID)
			if err != nil {
				return err
			}
			program, err := weave.ParseAddress(target)
			if err != nil {
				return errors.Wrap(err, "target")
			}
			metas := make([]weave.AccountMeta, len(accounts))
			for i, a := range accounts {
				if metas[i], err = parseAccount(a); err != nil {
					return err
				}
			}
			payload, err := decodeHex("data", data)
			if err != nil {
				return err
			}

			exec := multisig.NewExecution(scheme, id, nonce, program, metas, payload)
			digest, err := exec.Digest()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), digestJSON{
				Scheme:    scheme,
				Authority: weave.HexBytes(exec.Authority()),
				Nonce:     nonce,
				Digest:    digest,
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&schemeName, "scheme", "ed25519", "Multisig scheme: ed25519 or eth.")
	fl.StringVar(&configID, "config", "", "Hex encoded config ID.")
	fl.Uint64Var(&nonce, "nonce", 0, "Current nonce of the config.")
	fl.StringVar(&target, "target", "", "Address of the called program.")
	fl.StringArrayVar(&accounts, "account", nil, "Account of the call as <address>[,signer][,writable]. Can be repeated.")
	fl.StringVar(&data, "data", "", "Hex encoded instruction data.")
	return cmd
}
