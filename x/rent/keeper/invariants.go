package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/deadline"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

// CheckInvariants verifies that every contract sits in exactly one queue: the
// available queue until it starts, then the queue of its duration kind.
func (k *Keeper) CheckInvariants(ctx sdk.Context) (err error) {
	queues := map[queueKind]deadline.Queue[uint32]{
		availableQueue:    k.queue(ctx, availableQueue),
		fixedQueue:        k.queue(ctx, fixedQueue),
		subscriptionQueue: k.queue(ctx, subscriptionQueue),
	}

	count := 0
	k.IterateContracts(ctx, func(id uint32, c types.RentContract) bool {
		count++

		want := availableQueue
		switch {
		case !c.HasStarted():
		case c.Duration.IsSubscription():
			want = subscriptionQueue
		default:
			want = fixedQueue
		}

		due, ok := queues[want].DueAt(id)
		if !ok {
			err = fmt.Errorf("contract %d is missing from its queue", id)
			return true
		}
		if end, fixed := c.EndBlock(); fixed && due != end {
			err = fmt.Errorf("contract %d ends at %d but its deadline is %d", id, end, due)
			return true
		}

		return false
	})
	if err != nil {
		return err
	}

	if queued := queues[availableQueue].Len() + queues[fixedQueue].Len() + queues[subscriptionQueue].Len(); queued != count {
		return fmt.Errorf("%d queue entries for %d contracts", queued, count)
	}

	k.IterateOffers(ctx, func(o types.Offer) bool {
		c, ok := k.GetContract(ctx, o.NFTID)
		if !ok || c.HasStarted() {
			err = fmt.Errorf("offers for nft %d without an open contract", o.NFTID)
		}
		return err != nil
	})

	return err
}

// QueueInvariant checks the rent deadline queues against the stored contracts.
func QueueInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if err := k.CheckInvariants(ctx); err != nil {
			return sdk.FormatInvariant(types.ModuleName, "queues", err.Error()), true
		}

		return sdk.FormatInvariant(types.ModuleName, "queues", "contracts and queues match"), false
	}
}

// EscrowInvariant checks that the module account holds every reserved token
// cancellation fee.
func EscrowInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		owed := math.ZeroInt()
		k.IterateContracts(ctx, func(_ uint32, c types.RentContract) bool {
			if c.RenterCancellationFee.IsTokens() {
				owed = timedtypes.SaturatingAdd(owed, c.RenterCancellationFee.Amount)
			}
			if c.HasStarted() && c.RenteeCancellationFee.IsTokens() {
				owed = timedtypes.SaturatingAdd(owed, c.RenteeCancellationFee.Amount)
			}
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

// AllInvariants runs every rent invariant.
func AllInvariants(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{QueueInvariant(k), EscrowInvariant(k)} {
			if msg, broken := inv(ctx); broken {
				return msg, broken
			}
		}

		return "", false
	}
}
