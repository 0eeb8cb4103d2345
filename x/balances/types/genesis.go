package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Balance is the genesis form of an account balance.
type Balance struct {
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

// GenesisState defines the balances module's genesis state.
type GenesisState struct {
	Params   Params    `json:"params"`
	Balances []Balance `json:"balances"`
}

// NewGenesisState creates a new GenesisState instance.
func NewGenesisState(params Params, balances []Balance) *GenesisState {
	return &GenesisState{
		Params:   params,
		Balances: balances,
	}
}

// DefaultGenesisState returns the default GenesisState instance.
func DefaultGenesisState() *GenesisState {
	return NewGenesisState(DefaultParams(), []Balance{})
}

// Validate performs basic validation of the balances module genesis state.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(gs.Balances))
	for _, b := range gs.Balances {
		if _, err := sdk.AccAddressFromBech32(b.Address); err != nil {
			return fmt.Errorf("invalid balance address %q: %w", b.Address, err)
		}
		if _, ok := seen[b.Address]; ok {
			return fmt.Errorf("duplicate balance for %s", b.Address)
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return fmt.Errorf("invalid balance for %s: %s", b.Address, b.Amount)
		}
		seen[b.Address] = struct{}{}
	}

	return nil
}
