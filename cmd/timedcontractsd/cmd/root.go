package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates a new root command for timedcontractsd. It is called
// once in the main function.
func NewRootCmd() *cobra.Command {
	defaults := DefaultConfig()
	v := newViper(defaults)
	cfg := &Config{}

	rootCmd := &cobra.Command{
		Use:   "timedcontractsd",
		Short: "Time-ordered contract lifecycle engine for auctions, rentals and transmissions",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadConfig(v, cmd)
			if err != nil {
				return err
			}

			*cfg = loaded
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(FlagHome, defaults.Home, "directory for config and data")
	rootCmd.PersistentFlags().String(FlagLogLevel, defaults.LogLevel, "the logging level (trace|debug|info|warn|error|fatal|panic)")
	rootCmd.PersistentFlags().String(FlagLogFormat, defaults.LogFormat, "the logging format (plain|json)")

	rootCmd.AddCommand(
		StartCmd(cfg),
		SimulateCmd(cfg),
		GenesisCmd(cfg),
		ConfigCmd(v, cfg),
		QueryCmd(),
		TxCmd(),
	)

	return rootCmd
}
