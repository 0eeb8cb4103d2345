package app

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// FeeCollectorModule sends transmission fees to the module account.
	FeeCollectorModule = "module"
	// FeeCollectorProposer sends transmission fees to the block proposer.
	FeeCollectorProposer = "proposer"
)

// DefaultAuthority is the account allowed to update module params unless
// configured otherwise.
var DefaultAuthority = sdk.AccAddress(address.Module("gov")).String()

// Options configures an Engine.
type Options struct {
	ChainID string `mapstructure:"chain_id"`
	// Authority may send MsgUpdateParams to every module.
	Authority string `mapstructure:"authority"`
	// Proposer is recorded as the proposer of every block. Optional unless
	// FeeCollector is "proposer".
	Proposer string `mapstructure:"proposer"`
	// FeeCollector is "module" or "proposer".
	FeeCollector string `mapstructure:"fee_collector"`
	// EventLogSize is the number of blocks whose events stay in memory.
	EventLogSize int `mapstructure:"event_log_size"`
	// SnapshotKeepRecent is the number of snapshots kept in the store, zero
	// meaning all.
	SnapshotKeepRecent uint64 `mapstructure:"snapshot_keep_recent"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ChainID:            "timed-1",
		Authority:          DefaultAuthority,
		FeeCollector:       FeeCollectorModule,
		EventLogSize:       1_000,
		SnapshotKeepRecent: 10,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.ChainID == "" {
		return fmt.Errorf("chain id cannot be empty")
	}

	if _, err := sdk.AccAddressFromBech32(o.Authority); err != nil {
		return fmt.Errorf("invalid authority: %w", err)
	}

	if o.Proposer != "" {
		if _, err := sdk.AccAddressFromBech32(o.Proposer); err != nil {
			return fmt.Errorf("invalid proposer: %w", err)
		}
	}

	switch o.FeeCollector {
	case FeeCollectorModule:
	case FeeCollectorProposer:
		if o.Proposer == "" {
			return fmt.Errorf("fee collector %q needs a proposer", o.FeeCollector)
		}
	default:
		return fmt.Errorf("unknown fee collector %q", o.FeeCollector)
	}

	if o.EventLogSize <= 0 {
		return fmt.Errorf("event log size must be positive")
	}

	return nil
}

func (o Options) proposerBytes() []byte {
	if o.Proposer == "" {
		return nil
	}

	return sdk.MustAccAddressFromBech32(o.Proposer)
}
