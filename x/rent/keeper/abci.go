package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// BeginBlocker resolves due contracts: expired offers first, then fixed
// contracts that reached their end, then subscription renewals. Each queue is
// drained in deadline order. ActionsInBlockLimit bounds the work across all
// three queues and leftovers run in the next block.
func (k *Keeper) BeginBlocker(ctx sdk.Context) {
	params, err := k.GetParams(ctx)
	if err != nil {
		k.Logger(ctx).Error("failed to load params", "err", err)
		return
	}

	now := timedtypes.BlockNumber(ctx)
	limit := params.ActionsInBlockLimit
	processed := uint32(0)

	for _, kind := range []queueKind{availableQueue, fixedQueue, subscriptionQueue} {
		q := k.queue(ctx, kind)
		for limit == 0 || processed < limit {
			e, ok := q.PopNextEntry(now)
			if !ok {
				break
			}
			processed++

			// each resolution runs on its own cached store, a failed one
			// leaves no partial writes behind
			err := timedtypes.Branch(ctx, func(ctx sdk.Context) error {
				return k.resolve(ctx, kind, e)
			})
			if err != nil {
				k.forceRemove(ctx, e.ID, err)
			}
		}
	}
}
