package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/deadline"
	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

// InitGenesis initializes the rent module's state from a given genesis state.
func (k *Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) {
	if err := gs.Validate(); err != nil {
		panic(err)
	}

	if err := k.SetParams(ctx, gs.Params); err != nil {
		panic(err)
	}

	queues := map[queueKind][]deadline.Entry[uint32]{
		availableQueue:    gs.AvailableQueue,
		fixedQueue:        gs.FixedQueue,
		subscriptionQueue: gs.SubscriptionQueue,
	}
	for kind, entries := range queues {
		if err := k.queue(ctx, kind).Import(entries); err != nil {
			panic(err)
		}
	}

	for _, raw := range gs.Contracts {
		id, c, err := types.ContractFromRaw(raw)
		if err != nil {
			panic(err)
		}
		k.setContract(ctx, id, c)
	}

	for _, o := range gs.Offers {
		k.setOffers(ctx, o.NFTID, o.Rentees)
	}

	if err := k.CheckInvariants(ctx); err != nil {
		panic(fmt.Errorf("rent genesis: %w", err))
	}
}

// ExportGenesis returns a GenesisState for a given context.
func (k *Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	params, err := k.GetParams(ctx)
	if err != nil {
		panic(err)
	}

	offers := make([]types.Offer, 0)
	k.IterateOffers(ctx, func(o types.Offer) bool {
		offers = append(offers, o)
		return false
	})

	return types.NewGenesisState(
		params,
		k.GetContracts(ctx),
		k.GetAvailableQueue(ctx),
		k.GetFixedQueue(ctx),
		k.GetSubscriptionQueue(ctx),
		offers,
	)
}
