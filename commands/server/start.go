package server

import (
	"os"
	"path/filepath"

	"github.com/iov-one/stateless-weave/errors"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome  = "home"
	flagBind  = "bind"
	flagDebug = "debug"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// DefaultHome returns the directory used to store application data when
// none is given.
func DefaultHome(name string) string {
	return filepath.Join(os.ExpandEnv("$HOME"), "."+name)
}

// StartCmd returns a command that runs the application behind an ABCI
// socket server until the process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, defaultHome string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		Args:  cobra.NoArgs,
	}
	var (
		home  = cmd.Flags().String(flagHome, defaultHome, "directory to store files under")
		bind  = cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
		debug = cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		svr, err := newServer(gen, logger, *home, *bind, *debug)
		if err != nil {
			return err
		}
		if err := svr.Start(); err != nil {
			return errors.Wrap(err, "cannot start server")
		}

		// Wait forever
		cmn.TrapSignal(logger, func() {
			// Cleanup
			svr.Stop()
		})
		return nil
	}
	return cmd
}

// newServer generates the app in the proper dir and creates a socket server
// for it. The server is not started.
func newServer(gen AppGenerator, logger log.Logger, home, bind string, debug bool) (cmn.Service, error) {
	if err := os.MkdirAll(home, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "home directory: %s", err)
	}
	app, err := gen(home, logger, debug)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create application")
	}

	logger.Info("Starting ABCI app", "bind", bind, "home", home)
	svr, err := server.NewServer(bind, "socket", app)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	return svr, nil
}
