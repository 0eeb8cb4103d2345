package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"

	"github.com/tempo-labs/timed-contracts/app"
	"github.com/tempo-labs/timed-contracts/server"
	"github.com/tempo-labs/timed-contracts/store"
)

// StartCmd runs the engine, producing blocks and serving the HTTP API until
// interrupted.
func StartCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the engine and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return start(ctx, cmd, *cfg)
		},
	}

	defaults := DefaultConfig()
	cmd.Flags().String(FlagListenAddr, defaults.ListenAddr, "address the HTTP API listens on")
	cmd.Flags().Duration(FlagBlockTime, defaults.BlockTime, "time between two blocks")
	cmd.Flags().Uint64(FlagSnapshotInterval, defaults.SnapshotInterval, "blocks between two snapshots, 0 to disable")
	cmd.Flags().String(FlagDBBackend, defaults.DBBackend, "database backend (goleveldb|memdb)")
	cmd.Flags().String(FlagChainID, defaults.App.ChainID, "chain id")
	cmd.Flags().String(FlagAuthority, defaults.App.Authority, "account allowed to update module params")
	cmd.Flags().String(FlagProposer, defaults.App.Proposer, "account recorded as block proposer")
	cmd.Flags().String(FlagFeeCollector, defaults.App.FeeCollector, "receiver of transmission fees (module|proposer)")

	return cmd
}

func start(ctx context.Context, cmd *cobra.Command, cfg Config) error {
	logger, err := cfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	st, err := store.Open("timed", dbm.BackendType(cfg.DBBackend), cfg.DataDir())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close store", "err", err)
		}
	}()

	engine, err := app.NewEngine(logger, cfg.App, st)
	if err != nil {
		return err
	}

	if err := loadState(engine, cfg); err != nil {
		return err
	}

	producer := app.NewBlockProducer(engine, cfg.BlockTime, cfg.SnapshotInterval)
	if err := producer.Start(ctx); err != nil {
		return err
	}
	defer producer.Stop()

	err = server.New(engine, logger).ListenAndServe(ctx, cfg.ListenAddr)
	if err != nil {
		return err
	}

	// persist the blocks produced since the last snapshot
	if cfg.SnapshotInterval > 0 {
		producer.Stop()
		if err := engine.Snapshot(); err != nil {
			logger.Error("failed to save final snapshot", "err", err)
		}
	}

	return nil
}

// loadState restores the latest snapshot, falling back to the genesis file
// and then to the default genesis.
func loadState(engine *app.Engine, cfg Config) error {
	ok, err := engine.Restore()
	if err != nil || ok {
		return err
	}

	doc, err := app.ReadGenesisDoc(cfg.GenesisFile())
	switch {
	case errors.Is(err, os.ErrNotExist):
		engine.Logger().Info("no genesis file, starting from the default genesis", "path", cfg.GenesisFile())
		doc = engine.DefaultGenesis()
	case err != nil:
		return err
	}

	if doc.ChainID != "" && doc.ChainID != cfg.App.ChainID {
		return fmt.Errorf("genesis belongs to chain %q, not %q", doc.ChainID, cfg.App.ChainID)
	}

	return engine.InitGenesis(doc)
}
