package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/x/auction/types"
)

// InitGenesis initializes the auction module's state from a given genesis state.
func (k *Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) {
	if err := gs.Validate(); err != nil {
		panic(err)
	}

	if err := k.SetParams(ctx, gs.Params); err != nil {
		panic(err)
	}

	if err := k.deadlines(ctx).Import(gs.Deadlines); err != nil {
		panic(err)
	}

	for _, raw := range gs.Auctions {
		id, a, err := types.AuctionFromRaw(raw)
		if err != nil {
			panic(err)
		}
		k.setAuction(ctx, id, a)
	}

	for _, c := range gs.Claims {
		k.setClaim(ctx, c.Address, c.Amount)
	}

	if err := k.CheckInvariants(ctx); err != nil {
		panic(fmt.Errorf("auction genesis: %w", err))
	}
}

// ExportGenesis returns a GenesisState for a given context.
func (k *Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	params, err := k.GetParams(ctx)
	if err != nil {
		panic(err)
	}

	claims := make([]types.Claim, 0)
	k.IterateClaims(ctx, func(c types.Claim) bool {
		claims = append(claims, c)
		return false
	})

	return types.NewGenesisState(params, k.GetAuctions(ctx), k.GetDeadlines(ctx), claims)
}
