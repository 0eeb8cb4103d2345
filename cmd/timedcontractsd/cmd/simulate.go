package cmd

import (
	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/tempo-labs/timed-contracts/app"
	"github.com/tempo-labs/timed-contracts/server"
)

// SimulateCmd runs a scenario file against an in-memory engine and prints
// the outcome of every step.
func SimulateCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [scenario-file]",
		Short: "Run a scenario against a fresh in-memory engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.ReadScenario(args[0])
			if err != nil {
				return err
			}

			logger, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			results, err := simulate(logger, cfg.App, *s)
			if printErr := server.PrintJSON(cmd, results); printErr != nil {
				return printErr
			}
			if err != nil {
				return err
			}

			cmd.PrintErrf("scenario passed: %d steps\n", len(results))
			return nil
		},
	}

	return cmd
}

func simulate(logger log.Logger, opts app.Options, s app.Scenario) ([]app.StepResult, error) {
	engine, err := app.NewEngine(logger, opts, nil)
	if err != nil {
		return nil, err
	}

	if s.Genesis == nil {
		if err := engine.InitGenesis(engine.DefaultGenesis()); err != nil {
			return nil, err
		}
	}

	return app.RunScenario(engine, s)
}
