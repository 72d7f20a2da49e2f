/*
Msig is a command line client for stateless multisig accounts. It works
off-chain: it generates owner keys, computes the digest of a call that the
owners must approve, signs it and builds the verification payload that is
submitted together with the execute instruction.

All binary values are hex encoded.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/iov-one/stateless-weave"
	"github.com/spf13/cobra"
)

func main() {
	cmd := NewRootCommand(os.Stdin, os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand returns the msig command with all subcommands registered.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "msig",
		Version:       weave.Version(),
		Short:         "Off-chain tooling for stateless multisig accounts: keygen|config|digest|sign|encode|decode.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.AddCommand(
		NewKeygenCommand(),
		NewConfigCommand(),
		NewDigestCommand(),
		NewSignCommand(),
		NewEncodeCommand(),
		NewDecodeCommand(),
	)
	return cmd
}
