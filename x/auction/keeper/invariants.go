package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
)

// CheckInvariants verifies that every auction has exactly one deadline at its
// end block and that the queue holds nothing else.
func (k *Keeper) CheckInvariants(ctx sdk.Context) (err error) {
	deadlines := k.deadlines(ctx)

	count := 0
	k.IterateAuctions(ctx, func(raw types.RawAuction) bool {
		count++

		due, ok := deadlines.DueAt(raw.NFTID)
		switch {
		case !ok:
			err = fmt.Errorf("auction %d has no deadline", raw.NFTID)
		case due != raw.EndBlock:
			err = fmt.Errorf("auction %d ends at %d but its deadline is %d", raw.NFTID, raw.EndBlock, due)
		case len(raw.Bids) > raw.BidderLimit:
			err = fmt.Errorf("auction %d holds %d bids over its limit %d", raw.NFTID, len(raw.Bids), raw.BidderLimit)
		}

		return err != nil
	})
	if err != nil {
		return err
	}

	if deadlines.Len() != count {
		return fmt.Errorf("%d deadlines for %d auctions", deadlines.Len(), count)
	}

	return nil
}

// DeadlineInvariant checks the auction deadline queue against the stored
// auctions.
func DeadlineInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if err := k.CheckInvariants(ctx); err != nil {
			return sdk.FormatInvariant(types.ModuleName, "deadlines", err.Error()), true
		}

		return sdk.FormatInvariant(types.ModuleName, "deadlines", "auctions and deadlines match"), false
	}
}

// EscrowInvariant checks that the module account holds at least every live
// bid and unpaid claim.
func EscrowInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		owed := math.ZeroInt()
		k.IterateAuctions(ctx, func(raw types.RawAuction) bool {
			for _, b := range raw.Bids {
				owed = timedtypes.SaturatingAdd(owed, b.Amount)
			}
			return false
		})
		k.IterateClaims(ctx, func(c types.Claim) bool {
			owed = timedtypes.SaturatingAdd(owed, c.Amount)
			return false
		})

		held := k.bankKeeper.FreeBalance(ctx, escrowAddress())
		broken := held.LT(owed)

		return sdk.FormatInvariant(
			types.ModuleName, "escrow",
			fmt.Sprintf("escrow holds %s, owes %s", held, owed),
		), broken
	}
}

// AllInvariants runs every auction invariant.
func AllInvariants(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{DeadlineInvariant(k), EscrowInvariant(k)} {
			if msg, broken := inv(ctx); broken {
				return msg, broken
			}
		}

		return "", false
	}
}
