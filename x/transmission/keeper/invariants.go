package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

// CheckInvariants verifies that every timed protocol is queued exactly once
// at its block and that nothing else is queued.
func (k *Keeper) CheckInvariants(ctx sdk.Context) (err error) {
	queue := k.queue(ctx)

	timed := 0
	k.IterateTransmissions(ctx, func(id uint32, t types.TransmissionData) bool {
		due, queued := queue.DueAt(id)
		if !t.Protocol.IsTimed() {
			if queued {
				err = fmt.Errorf("transmission %d has no block but is queued", id)
			}
			return err != nil
		}

		timed++
		switch {
		case !queued:
			err = fmt.Errorf("transmission %d is missing from the queue", id)
		case due != t.Protocol.Block:
			err = fmt.Errorf("transmission %d is due at %d but queued at %d", id, t.Protocol.Block, due)
		}

		return err != nil
	})
	if err != nil {
		return err
	}

	if timed != queue.Len() {
		return fmt.Errorf("%d queue entries for %d timed transmissions", queue.Len(), timed)
	}

	return nil
}

// QueueInvariant checks the transmission deadline queue against the stored
// protocols.
func QueueInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if err := k.CheckInvariants(ctx); err != nil {
			return sdk.FormatInvariant(types.ModuleName, "queue", err.Error()), true
		}

		return sdk.FormatInvariant(types.ModuleName, "queue", "transmissions and queue match"), false
	}
}

// FlagInvariant checks that every NFT with a protocol carries the
// transmission flag and still belongs to the protocol owner.
func FlagInvariant(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var broken string
		k.IterateTransmissions(ctx, func(id uint32, t types.TransmissionData) bool {
			nft, ok := k.nftKeeper.GetNFT(ctx, id)
			switch {
			case !ok:
				broken = fmt.Sprintf("nft %d does not exist", id)
			case !nft.State.Has(nfttypes.FlagTransmission):
				broken = fmt.Sprintf("nft %d is not flagged", id)
			case nft.Owner != t.Owner:
				broken = fmt.Sprintf("nft %d is owned by %s, not %s", id, nft.Owner, t.Owner)
			}
			return broken != ""
		})
		if broken != "" {
			return sdk.FormatInvariant(types.ModuleName, "flags", broken), true
		}

		return sdk.FormatInvariant(types.ModuleName, "flags", "every protocol nft is flagged"), false
	}
}

// AllInvariants runs every transmission invariant.
func AllInvariants(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{QueueInvariant(k), FlagInvariant(k)} {
			if msg, broken := inv(ctx); broken {
				return msg, broken
			}
		}

		return "", false
	}
}
