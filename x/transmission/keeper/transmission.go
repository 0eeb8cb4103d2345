package keeper

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

// busyFlags are the NFT states that forbid setting a protocol.
var busyFlags = []nfttypes.Flag{
	nfttypes.FlagListed,
	nfttypes.FlagCapsule,
	nfttypes.FlagDelegated,
	nfttypes.FlagSoulbound,
	nfttypes.FlagRented,
	nfttypes.FlagTransmission,
	nfttypes.FlagSyncing,
}

func nftAttr(nftID uint32) sdk.Attribute {
	return sdk.NewAttribute(types.AttributeKeyNFTID, strconv.FormatUint(uint64(nftID), 10))
}

// checkBlock verifies that a transmission block lies in (now, now+MaxBlockDuration].
func checkBlock(params types.Params, now, block uint64) error {
	if block <= now {
		return errorsmod.Wrapf(types.ErrTransmissionBlockInPast, "block %d at %d", block, now)
	}
	if block-now > params.MaxBlockDuration {
		return errorsmod.Wrapf(types.ErrTransmissionTooFarAway, "block %d is more than %d blocks away", block, params.MaxBlockDuration)
	}

	return nil
}

// resolve runs the due transmission of nftID.
func (k *Keeper) resolve(ctx sdk.Context, nftID uint32) error {
	t, ok := k.GetTransmission(ctx, nftID)
	if !ok {
		return errorsmod.Wrapf(types.ErrQueueInconsistency, "no transmission for queued nft %d", nftID)
	}

	if t.Protocol.Kind == types.ProtocolOnConsentAtBlock && !t.ThresholdReached() {
		return k.expire(ctx, nftID, t)
	}

	return k.transmit(ctx, nftID, t)
}

// transmit hands the NFT over to the recipient and drops the protocol.
func (k *Keeper) transmit(ctx sdk.Context, nftID uint32, t types.TransmissionData) error {
	nft, ok := k.nftKeeper.GetNFT(ctx, nftID)
	if !ok {
		return errorsmod.Wrapf(nfttypes.ErrNFTNotFound, "id %d", nftID)
	}
	if nft.Owner != t.Owner {
		return errorsmod.Wrapf(types.ErrNotTheNFTOwner, "nft %d moved from %s to %s", nftID, t.Owner, nft.Owner)
	}

	if err := k.nftKeeper.SetFlag(ctx, nftID, nfttypes.FlagTransmission, false); err != nil {
		return err
	}
	if err := k.nftKeeper.SetOwner(ctx, nftID, t.Recipient); err != nil {
		return err
	}
	k.removeTransmission(ctx, nftID)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransmitted,
			nftAttr(nftID),
			sdk.NewAttribute(types.AttributeKeyFrom, t.Owner),
			sdk.NewAttribute(types.AttributeKeyRecipient, t.Recipient),
			sdk.NewAttribute(types.AttributeKeyProtocol, string(t.Protocol.Kind)),
		),
	)

	return nil
}

// expire drops a protocol whose consent threshold was not reached in time.
func (k *Keeper) expire(ctx sdk.Context, nftID uint32, t types.TransmissionData) error {
	if err := k.nftKeeper.SetFlag(ctx, nftID, nfttypes.FlagTransmission, false); err != nil {
		return err
	}
	k.removeTransmission(ctx, nftID)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransmissionExpired,
			nftAttr(nftID),
			sdk.NewAttribute(types.AttributeKeyOwner, t.Owner),
			sdk.NewAttribute(types.AttributeKeyConsents, strconv.Itoa(len(t.Consents))),
		),
	)

	return nil
}

// forceRemove drops a transmission whose resolution failed so that it is not
// retried every block.
func (k *Keeper) forceRemove(ctx sdk.Context, nftID uint32, cause error) {
	k.Logger(ctx).Error(
		"failed to resolve transmission",
		"nft_id", nftID,
		"err", cause,
	)

	k.removeTransmission(ctx, nftID)

	if err := k.nftKeeper.SetFlag(ctx, nftID, nfttypes.FlagTransmission, false); err != nil {
		k.Logger(ctx).Error("failed to clear transmission flag", "nft_id", nftID, "err", err)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransmissionResolutionFailed,
			nftAttr(nftID),
			sdk.NewAttribute(types.AttributeKeyError, cause.Error()),
		),
	)
}
