package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BlockNumber returns the height of the block the context executes in.
func BlockNumber(ctx sdk.Context) uint64 {
	h := ctx.BlockHeight()
	if h < 0 {
		return 0
	}

	return uint64(h)
}
