package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// Marketplace is a venue that takes a commission on sales it hosts.
type Marketplace struct {
	ID            uint32             `json:"id"`
	Owner         string             `json:"owner"`
	CommissionFee timedtypes.Permill `json:"commission_fee"`
}

// Validate performs basic validation of a marketplace.
func (m Marketplace) Validate() error {
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return fmt.Errorf("marketplace %d: invalid owner: %w", m.ID, err)
	}

	return m.CommissionFee.Validate()
}

// GenesisState defines the marketplace module's genesis state.
type GenesisState struct {
	NextID       uint32        `json:"next_id"`
	Marketplaces []Marketplace `json:"marketplaces"`
}

// DefaultGenesisState returns the default GenesisState instance.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{Marketplaces: []Marketplace{}}
}

// Validate performs basic validation of the marketplace module genesis state.
func (gs GenesisState) Validate() error {
	seen := make(map[uint32]struct{}, len(gs.Marketplaces))
	for _, m := range gs.Marketplaces {
		if err := m.Validate(); err != nil {
			return err
		}
		if _, ok := seen[m.ID]; ok {
			return fmt.Errorf("duplicate marketplace id %d", m.ID)
		}
		if m.ID >= gs.NextID {
			return fmt.Errorf("marketplace id %d is not below next id %d", m.ID, gs.NextID)
		}
		seen[m.ID] = struct{}{}
	}

	return nil
}
