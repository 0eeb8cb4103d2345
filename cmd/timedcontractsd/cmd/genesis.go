package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/tempo-labs/timed-contracts/app"
	"github.com/tempo-labs/timed-contracts/server"
)

// GenesisCmd groups the genesis file commands.
func GenesisCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Genesis file subcommands",
	}

	cmd.AddCommand(
		DefaultGenesisCmd(cfg),
		ValidateGenesisCmd(cfg),
	)

	return cmd
}

// DefaultGenesisCmd prints the default genesis of every module.
func DefaultGenesisCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Print the default genesis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := app.NewEngine(log.NewNopLogger(), cfg.App, nil)
			if err != nil {
				return err
			}

			return server.PrintJSON(cmd, engine.DefaultGenesis())
		},
	}
}

// ValidateGenesisCmd checks a genesis file, defaulting to the one in the home
// directory. The state is loaded into an engine so that module invariants are
// checked too.
func ValidateGenesisCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a genesis file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.GenesisFile()
			if len(args) == 1 {
				path = args[0]
			}

			doc, err := app.ReadGenesisDoc(path)
			if err != nil {
				return err
			}

			engine, err := app.NewEngine(log.NewNopLogger(), cfg.App, nil)
			if err != nil {
				return err
			}

			if err := engine.InitGenesis(doc); err != nil {
				return fmt.Errorf("invalid genesis %s: %w", path, err)
			}

			cmd.Printf("genesis %s is valid\n", path)
			return nil
		},
	}
}
