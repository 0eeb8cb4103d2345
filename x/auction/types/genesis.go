package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/deadline"
)

// Claim is an outbid amount owed to an account.
type Claim struct {
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

// GenesisState defines the auction module's genesis state.
type GenesisState struct {
	Params    Params                   `json:"params"`
	Auctions  []RawAuction             `json:"auctions"`
	Deadlines []deadline.Entry[uint32] `json:"deadlines"`
	Claims    []Claim                  `json:"claims"`
}

// NewGenesisState creates a new GenesisState instance.
func NewGenesisState(params Params, auctions []RawAuction, deadlines []deadline.Entry[uint32], claims []Claim) *GenesisState {
	return &GenesisState{
		Params:    params,
		Auctions:  auctions,
		Deadlines: deadlines,
		Claims:    claims,
	}
}

// DefaultGenesisState returns the default GenesisState instance.
func DefaultGenesisState() *GenesisState {
	return NewGenesisState(DefaultParams(), []RawAuction{}, []deadline.Entry[uint32]{}, []Claim{})
}

// Validate performs basic validation of the auction module genesis state.
// Every auction must have exactly one deadline at its end block.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	if len(gs.Auctions) != len(gs.Deadlines) {
		return fmt.Errorf("%d auctions but %d deadlines", len(gs.Auctions), len(gs.Deadlines))
	}

	if err := deadline.ValidateEntries(int(gs.Params.ParallelAuctionLimit), gs.Deadlines); err != nil {
		return err
	}

	dues := make(map[uint32]uint64, len(gs.Deadlines))
	for _, e := range gs.Deadlines {
		dues[e.ID] = e.DueAt
	}

	ids := make(map[uint32]struct{}, len(gs.Auctions))
	for _, raw := range gs.Auctions {
		id, a, err := AuctionFromRaw(raw)
		if err != nil {
			return err
		}
		if _, ok := ids[id]; ok {
			return fmt.Errorf("duplicate auction for nft %d", id)
		}
		ids[id] = struct{}{}

		due, ok := dues[id]
		if !ok {
			return fmt.Errorf("auction %d has no deadline", id)
		}
		if due != a.EndBlock {
			return fmt.Errorf("auction %d ends at %d but its deadline is %d", id, a.EndBlock, due)
		}
		if a.Bidders.Limit() > int(gs.Params.BidderListLimit) {
			return fmt.Errorf("auction %d bidder limit %d exceeds %d", id, a.Bidders.Limit(), gs.Params.BidderListLimit)
		}
	}

	seen := make(map[string]struct{}, len(gs.Claims))
	for _, c := range gs.Claims {
		if _, err := sdk.AccAddressFromBech32(c.Address); err != nil {
			return fmt.Errorf("invalid claim address %q: %w", c.Address, err)
		}
		if _, ok := seen[c.Address]; ok {
			return fmt.Errorf("duplicate claim for %s", c.Address)
		}
		if c.Amount.IsNil() || !c.Amount.IsPositive() {
			return fmt.Errorf("claim of %s must be positive", c.Address)
		}
		seen[c.Address] = struct{}{}
	}

	return nil
}
