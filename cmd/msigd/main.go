/*
msigd runs the stateless multisig application as an ABCI server.

	msigd start --home ~/.msigd --bind tcp://localhost:26658
	msigd validate genesis.json
*/
package main

import (
	"fmt"
	"os"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/app"
	"github.com/iov-one/stateless-weave/commands/server"
	"github.com/iov-one/stateless-weave/store/iavl"
	"github.com/spf13/cobra"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const appName = "msig"

// GenerateApp opens the state stored under home and returns the
// application built on top of it.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	db := iavl.NewCommitStore(home, appName)
	return app.NewApplication(appName, db, logger, debug), nil
}

func newRootCommand(logger log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "msigd",
		Short:         "Stateless multisig ABCI application",
		Version:       weave.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		server.StartCmd(GenerateApp, logger, server.DefaultHome("msigd")),
		server.ValidateCmd(app.Initializers()),
	)
	return root
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", appName)

	if err := newRootCommand(logger).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
