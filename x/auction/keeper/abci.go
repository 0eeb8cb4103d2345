package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
)

// BeginBlocker resolves every auction whose end block has been reached, in
// deadline order, up to ActionsInBlockLimit. Leftovers run in the next block.
func (k *Keeper) BeginBlocker(ctx sdk.Context) {
	params, err := k.GetParams(ctx)
	if err != nil {
		k.Logger(ctx).Error("failed to load params", "err", err)
		return
	}

	now := timedtypes.BlockNumber(ctx)
	limit := params.ActionsInBlockLimit
	deadlines := k.deadlines(ctx)

	for processed := uint32(0); limit == 0 || processed < limit; processed++ {
		nftID, ok := deadlines.PopNext(now)
		if !ok {
			return
		}

		// each resolution runs on its own cached store, a failed one
		// leaves no partial writes behind
		err := timedtypes.Branch(ctx, func(ctx sdk.Context) error {
			return k.completeAuction(ctx, nftID, types.AttributeValueDeadline)
		})
		if err != nil {
			k.forceRemove(ctx, nftID, err)
		}
	}
}
