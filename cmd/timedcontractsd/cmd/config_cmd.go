package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigCmd groups the configuration commands.
func ConfigCmd(v *viper.Viper, cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration subcommands",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write config.toml with the current settings to the home directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := writeConfig(v, *cfg)
				if err != nil {
					return err
				}

				cmd.Printf("wrote %s\n", path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printConfig(cmd, *cfg)
			},
		},
	)

	return cmd
}

func printConfig(cmd *cobra.Command, cfg Config) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "home = %q\n", cfg.Home)
	fmt.Fprintf(w, "log_level = %q\n", cfg.LogLevel)
	fmt.Fprintf(w, "log_format = %q\n", cfg.LogFormat)
	fmt.Fprintf(w, "listen_addr = %q\n", cfg.ListenAddr)
	fmt.Fprintf(w, "block_time = %q\n", cfg.BlockTime.String())
	fmt.Fprintf(w, "snapshot_interval = %d\n", cfg.SnapshotInterval)
	fmt.Fprintf(w, "db_backend = %q\n", cfg.DBBackend)
	fmt.Fprintf(w, "chain_id = %q\n", cfg.App.ChainID)
	fmt.Fprintf(w, "authority = %q\n", cfg.App.Authority)
	fmt.Fprintf(w, "proposer = %q\n", cfg.App.Proposer)
	fmt.Fprintf(w, "fee_collector = %q\n", cfg.App.FeeCollector)
	fmt.Fprintf(w, "event_log_size = %d\n", cfg.App.EventLogSize)
	fmt.Fprintf(w, "snapshot_keep_recent = %d\n", cfg.App.SnapshotKeepRecent)

	return nil
}
