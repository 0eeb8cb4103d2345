package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

// InitGenesis initializes the transmission module's state from a given genesis state.
func (k *Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) {
	if err := gs.Validate(); err != nil {
		panic(err)
	}

	if err := k.SetParams(ctx, gs.Params); err != nil {
		panic(err)
	}

	if err := k.queue(ctx).Import(gs.Queue); err != nil {
		panic(err)
	}

	for _, raw := range gs.Transmissions {
		id, t, err := types.TransmissionFromRaw(raw)
		if err != nil {
			panic(err)
		}
		k.setTransmission(ctx, id, t)
	}

	if err := k.CheckInvariants(ctx); err != nil {
		panic(fmt.Errorf("transmission genesis: %w", err))
	}
}

// ExportGenesis returns a GenesisState for a given context.
func (k *Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	params, err := k.GetParams(ctx)
	if err != nil {
		panic(err)
	}

	return types.NewGenesisState(params, k.GetTransmissions(ctx), k.GetQueue(ctx))
}
