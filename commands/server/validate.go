package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/store"
	"github.com/spf13/cobra"
)

// ValidateGenesis runs the initializer against the application state of
// every given genesis file. Failures of all files are reported together.
func ValidateGenesis(ini weave.Initializer, genesisPaths []string) error {
	var err error
	for _, path := range genesisPaths {
		err = errors.Append(err, errors.Wrap(validateGenesis(ini, path), path))
	}
	return err
}

func validateGenesis(ini weave.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read genesis file: %s", err)
	}

	var genesis struct {
		State weave.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}

// ValidateCmd returns a command that checks genesis files without
// starting the application.
func ValidateCmd(ini weave.Initializer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <genesis.json>...",
		Short: "Validate the application state of genesis files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateGenesis(ini, args); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d genesis file(s) valid\n", len(args))
			return nil
		},
	}
}
