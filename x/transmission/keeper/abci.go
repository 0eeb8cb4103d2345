package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// BeginBlocker resolves the protocols whose block was reached, in deadline
// order and at most ActionsInBlockLimit of them. Leftovers run in the next
// block.
func (k *Keeper) BeginBlocker(ctx sdk.Context) {
	params, err := k.GetParams(ctx)
	if err != nil {
		k.Logger(ctx).Error("failed to load params", "err", err)
		return
	}

	now := timedtypes.BlockNumber(ctx)
	limit := params.ActionsInBlockLimit
	queue := k.queue(ctx)

	for processed := uint32(0); limit == 0 || processed < limit; processed++ {
		nftID, ok := queue.PopNext(now)
		if !ok {
			return
		}

		// each resolution runs on its own cached store, a failed one
		// leaves no partial writes behind
		err := timedtypes.Branch(ctx, func(ctx sdk.Context) error {
			return k.resolve(ctx, nftID)
		})
		if err != nil {
			k.forceRemove(ctx, nftID, err)
		}
	}
}
