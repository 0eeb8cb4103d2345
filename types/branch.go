package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Branch runs fn on a cached copy of ctx. The state writes and events of fn
// reach ctx only when fn succeeds.
func Branch(ctx sdk.Context, fn func(ctx sdk.Context) error) error {
	cacheCtx, write := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}

	write()

	return nil
}
