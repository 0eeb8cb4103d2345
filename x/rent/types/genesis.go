package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/deadline"
)

// Offer lists the accounts waiting for the renter of NFTID to accept them.
type Offer struct {
	NFTID   uint32   `json:"nft_id"`
	Rentees []string `json:"rentees"`
}

// GenesisState defines the rent module's genesis state.
type GenesisState struct {
	Params            Params                   `json:"params"`
	Contracts         []RawRentContract        `json:"contracts"`
	AvailableQueue    []deadline.Entry[uint32] `json:"available_queue"`
	FixedQueue        []deadline.Entry[uint32] `json:"fixed_queue"`
	SubscriptionQueue []deadline.Entry[uint32] `json:"subscription_queue"`
	Offers            []Offer                  `json:"offers"`
}

// NewGenesisState creates a new GenesisState instance.
func NewGenesisState(
	params Params,
	contracts []RawRentContract,
	available, fixed, subscription []deadline.Entry[uint32],
	offers []Offer,
) *GenesisState {
	return &GenesisState{
		Params:            params,
		Contracts:         contracts,
		AvailableQueue:    available,
		FixedQueue:        fixed,
		SubscriptionQueue: subscription,
		Offers:            offers,
	}
}

// DefaultGenesisState returns the default GenesisState instance.
func DefaultGenesisState() *GenesisState {
	return NewGenesisState(
		DefaultParams(),
		[]RawRentContract{},
		[]deadline.Entry[uint32]{},
		[]deadline.Entry[uint32]{},
		[]deadline.Entry[uint32]{},
		[]Offer{},
	)
}

// Validate performs basic validation of the rent module genesis state. Every
// contract must be queued exactly once: in the available queue until it
// starts, then in the queue matching its duration.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	capacity := int(gs.Params.SimultaneousContractLimit)
	queues := []struct {
		name    string
		entries []deadline.Entry[uint32]
	}{
		{"available", gs.AvailableQueue},
		{"fixed", gs.FixedQueue},
		{"subscription", gs.SubscriptionQueue},
	}
	for _, q := range queues {
		if err := deadline.ValidateEntries(capacity, q.entries); err != nil {
			return fmt.Errorf("%s queue: %w", q.name, err)
		}
	}

	available, fixed, subscription := dueBlocks(gs.AvailableQueue), dueBlocks(gs.FixedQueue), dueBlocks(gs.SubscriptionQueue)

	queued := len(available) + len(fixed) + len(subscription)
	if queued != len(gs.Contracts) {
		return fmt.Errorf("%d contracts but %d queue entries", len(gs.Contracts), queued)
	}

	contracts := make(map[uint32]RentContract, len(gs.Contracts))
	for _, raw := range gs.Contracts {
		id, c, err := ContractFromRaw(raw)
		if err != nil {
			return err
		}
		if _, ok := contracts[id]; ok {
			return fmt.Errorf("duplicate contract for nft %d", id)
		}
		contracts[id] = c

		if len(c.AcceptanceType.AllowList) > int(gs.Params.AccountSizeLimit) {
			return fmt.Errorf("contract %d allow list exceeds %d", id, gs.Params.AccountSizeLimit)
		}

		var ok bool
		switch {
		case !c.HasStarted():
			_, ok = available[id]
		case c.Duration.IsSubscription():
			_, ok = subscription[id]
		default:
			var due uint64
			due, ok = fixed[id]
			if end, _ := c.EndBlock(); ok && due != end {
				return fmt.Errorf("contract %d ends at %d but its deadline is %d", id, end, due)
			}
		}
		if !ok {
			return fmt.Errorf("contract %d is not in the queue matching its state", id)
		}
	}

	seen := make(map[uint32]struct{}, len(gs.Offers))
	for _, o := range gs.Offers {
		if _, ok := seen[o.NFTID]; ok {
			return fmt.Errorf("duplicate offers for nft %d", o.NFTID)
		}
		seen[o.NFTID] = struct{}{}

		c, ok := contracts[o.NFTID]
		if !ok {
			return fmt.Errorf("offers for nft %d without a contract", o.NFTID)
		}
		if c.HasStarted() || c.AcceptanceType.Kind != AcceptanceManual {
			return fmt.Errorf("contract %d does not take offers", o.NFTID)
		}
		if len(o.Rentees) > int(gs.Params.AccountSizeLimit) {
			return fmt.Errorf("contract %d has more than %d offers", o.NFTID, gs.Params.AccountSizeLimit)
		}

		rentees := make(map[string]struct{}, len(o.Rentees))
		for _, r := range o.Rentees {
			if _, err := sdk.AccAddressFromBech32(r); err != nil {
				return fmt.Errorf("invalid offer address %q: %w", r, err)
			}
			if _, ok := rentees[r]; ok {
				return fmt.Errorf("duplicate offer of %s for nft %d", r, o.NFTID)
			}
			rentees[r] = struct{}{}
		}
	}

	return nil
}

func dueBlocks(entries []deadline.Entry[uint32]) map[uint32]uint64 {
	dues := make(map[uint32]uint64, len(entries))
	for _, e := range entries {
		dues[e.ID] = e.DueAt
	}

	return dues
}
