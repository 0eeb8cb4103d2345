package keeper

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/deadline"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

// busyFlags are the NFT states that forbid renting the NFT or handing it over
// as a fee.
var busyFlags = []nfttypes.Flag{
	nfttypes.FlagListed,
	nfttypes.FlagCapsule,
	nfttypes.FlagDelegated,
	nfttypes.FlagSoulbound,
	nfttypes.FlagRented,
	nfttypes.FlagTransmission,
	nfttypes.FlagSyncing,
}

func escrowAddress() string {
	return types.ModuleAddress.String()
}

func nftAttr(nftID uint32) sdk.Attribute {
	return sdk.NewAttribute(types.AttributeKeyNFTID, strconv.FormatUint(uint64(nftID), 10))
}

func (k *Keeper) transfer(ctx sdk.Context, from, to string, amount math.Int, req balancestypes.ExistenceRequirement) error {
	return balancestypes.Transfer(ctx, k.bankKeeper, from, to, amount, req)
}

// checkFeeNFT verifies that owner can hand nftID over as a fee.
func (k *Keeper) checkFeeNFT(ctx sdk.Context, nftID uint32, owner string) error {
	nft, ok := k.nftKeeper.GetNFT(ctx, nftID)
	if !ok {
		return errorsmod.Wrapf(nfttypes.ErrNFTNotFound, "fee nft %d", nftID)
	}
	if nft.Owner != owner {
		return errorsmod.Wrapf(types.ErrFeeNFTNotOwned, "nft %d", nftID)
	}
	if flag, busy := nft.State.FirstOf(busyFlags...); busy {
		return errorsmod.Wrapf(types.ErrFeeNFTIsBusy, "nft %d is %s", nftID, flag)
	}

	return nil
}

// checkRenteeFees verifies that rentee can hand over the fee nfts of c.
func (k *Keeper) checkRenteeFees(ctx sdk.Context, c types.RentContract, rentee string) error {
	if c.RentFee.Kind == types.FeeNFT {
		if err := k.checkFeeNFT(ctx, c.RentFee.NFTID, rentee); err != nil {
			return err
		}
	}

	if c.RenteeCancellationFee.Kind == types.FeeNFT {
		return k.checkFeeNFT(ctx, c.RenteeCancellationFee.NFTID, rentee)
	}

	return nil
}

// payRentFee pays the rent fee from the rentee to the renter.
func (k *Keeper) payRentFee(ctx sdk.Context, from, to string, fee types.RentFee) error {
	if fee.Kind == types.FeeNFT {
		if err := k.checkFeeNFT(ctx, fee.NFTID, from); err != nil {
			return err
		}

		return k.nftKeeper.SetOwner(ctx, fee.NFTID, to)
	}

	return k.transfer(ctx, from, to, fee.Amount, balancestypes.KeepAlive)
}

// reserveCancellationFee moves the cancellation fee of owner into the module
// account until the contract ends.
func (k *Keeper) reserveCancellationFee(ctx sdk.Context, owner string, fee types.CancellationFee) error {
	switch {
	case fee.IsTokens():
		return k.transfer(ctx, owner, escrowAddress(), fee.Amount, balancestypes.KeepAlive)
	case fee.Kind == types.FeeNFT:
		if err := k.checkFeeNFT(ctx, fee.NFTID, owner); err != nil {
			return err
		}

		return k.nftKeeper.SetOwner(ctx, fee.NFTID, escrowAddress())
	default:
		return nil
	}
}

// releaseCancellationFee hands a reserved cancellation fee to addr.
func (k *Keeper) releaseCancellationFee(ctx sdk.Context, fee types.CancellationFee, addr string) error {
	switch {
	case fee.IsTokens():
		return k.transfer(ctx, escrowAddress(), addr, fee.Amount, balancestypes.AllowDeath)
	case fee.Kind == types.FeeNFT:
		return k.nftKeeper.SetOwner(ctx, fee.NFTID, addr)
	default:
		return nil
	}
}

// releaseFees returns every reserved cancellation fee to its owner.
func (k *Keeper) releaseFees(ctx sdk.Context, c types.RentContract) error {
	if err := k.releaseCancellationFee(ctx, c.RenterCancellationFee, c.Renter); err != nil {
		return err
	}

	if !c.HasStarted() {
		return nil
	}

	return k.releaseCancellationFee(ctx, c.RenteeCancellationFee, c.Rentee)
}

// flexibleSplit returns the share of a flexible fee owed to the other party
// when the contract is revoked at now. The share shrinks with the blocks left.
func flexibleSplit(c types.RentContract, amount math.Int, now uint64) math.Int {
	end, ok := c.EndBlock()
	if !ok || now >= end {
		return math.ZeroInt()
	}

	return timedtypes.MulDivTruncate(amount, end-now, c.Duration.Blocks)
}

// settleRevocation pays the cancellation fee of revoker to the other party
// and returns the fee of the other party.
func (k *Keeper) settleRevocation(ctx sdk.Context, c types.RentContract, revoker string, now uint64) error {
	revokerFee, otherFee, other := c.RenteeCancellationFee, c.RenterCancellationFee, c.Renter
	if revoker == c.Renter {
		revokerFee, otherFee, other = c.RenterCancellationFee, c.RenteeCancellationFee, c.Rentee
	}

	if err := k.releaseCancellationFee(ctx, otherFee, other); err != nil {
		return err
	}

	if revokerFee.Kind != types.FeeFlexibleTokens {
		return k.releaseCancellationFee(ctx, revokerFee, other)
	}

	owed := flexibleSplit(c, revokerFee.Amount, now)
	if err := k.transfer(ctx, escrowAddress(), other, owed, balancestypes.AllowDeath); err != nil {
		return err
	}

	return k.transfer(ctx, escrowAddress(), revoker, timedtypes.SaturatingSub(revokerFee.Amount, owed), balancestypes.AllowDeath)
}

// endContract settles the fees of the contract of nftID and drops it. An
// empty revoker returns every fee to its owner.
func (k *Keeper) endContract(ctx sdk.Context, nftID uint32, c types.RentContract, revoker string) error {
	var err error
	if revoker != "" && c.HasStarted() {
		err = k.settleRevocation(ctx, c, revoker, timedtypes.BlockNumber(ctx))
	} else {
		err = k.releaseFees(ctx, c)
	}
	if err != nil {
		return err
	}

	if err := k.nftKeeper.SetFlag(ctx, nftID, nfttypes.FlagRented, false); err != nil {
		return err
	}

	k.removeContract(ctx, nftID)

	return nil
}

// startContract accepts rentee on the contract of nftID. The rentee pays the
// first rent fee and reserves its cancellation fee, and the contract moves from
// the available queue to the queue matching its duration.
func (k *Keeper) startContract(ctx sdk.Context, nftID uint32, c types.RentContract, rentee string) error {
	now := timedtypes.BlockNumber(ctx)

	target, due := fixedQueue, now+c.Duration.Blocks
	if c.Duration.IsSubscription() {
		target, due = subscriptionQueue, now+c.Duration.Period
	}
	if k.queue(ctx, target).IsFull() {
		return types.ErrMaxSimultaneousContractReached
	}

	if err := k.checkRenteeFees(ctx, c, rentee); err != nil {
		return err
	}

	if err := k.payRentFee(ctx, rentee, c.Renter, c.RentFee); err != nil {
		return err
	}

	if err := k.reserveCancellationFee(ctx, rentee, c.RenteeCancellationFee); err != nil {
		return err
	}

	c.Rentee = rentee
	c.StartBlock = &now
	c.TermsAccepted = true

	k.queue(ctx, availableQueue).Remove(nftID)
	if err := k.queue(ctx, target).Insert(nftID, due); err != nil {
		return errorsmod.Wrap(types.ErrQueueInconsistency, err.Error())
	}
	k.setOffers(ctx, nftID, nil)
	k.setContract(ctx, nftID, c)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractStarted,
			nftAttr(nftID),
			sdk.NewAttribute(types.AttributeKeyRenter, c.Renter),
			sdk.NewAttribute(types.AttributeKeyRentee, rentee),
			sdk.NewAttribute(types.AttributeKeyDuration, string(c.Duration.Kind)),
		),
	)

	return nil
}

// resolve applies the transition of the queue entry e.
func (k *Keeper) resolve(ctx sdk.Context, kind queueKind, e deadline.Entry[uint32]) error {
	nftID := e.ID
	c, ok := k.GetContract(ctx, nftID)
	if !ok {
		return errorsmod.Wrapf(types.ErrQueueInconsistency, "no contract for nft %d", nftID)
	}

	switch kind {
	case availableQueue:
		return k.expireAvailable(ctx, nftID, c)
	case fixedQueue:
		return k.endFixed(ctx, nftID, c)
	default:
		return k.renewSubscription(ctx, nftID, c, e.DueAt)
	}
}

func (k *Keeper) expireAvailable(ctx sdk.Context, nftID uint32, c types.RentContract) error {
	if c.HasStarted() {
		return errorsmod.Wrapf(types.ErrQueueInconsistency, "started contract %d in the available queue", nftID)
	}

	if err := k.endContract(ctx, nftID, c, ""); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractExpired,
			nftAttr(nftID),
			sdk.NewAttribute(types.AttributeKeyRenter, c.Renter),
		),
	)

	return nil
}

func (k *Keeper) endFixed(ctx sdk.Context, nftID uint32, c types.RentContract) error {
	if !c.HasStarted() || c.Duration.IsSubscription() {
		return errorsmod.Wrapf(types.ErrQueueInconsistency, "contract %d is not a running fixed contract", nftID)
	}

	return k.endWithReason(ctx, nftID, c, "", types.AttributeValueFixedEnd)
}

// renewSubscription charges the period starting at due, or ends the
// subscription when the terms were not accepted, the maximum duration elapsed
// or the rentee cannot pay. Renewals keep their schedule when they run late:
// the next one is due a period after due, not after the current block.
func (k *Keeper) renewSubscription(ctx sdk.Context, nftID uint32, c types.RentContract, due uint64) error {
	if !c.HasStarted() || !c.Duration.IsSubscription() {
		return errorsmod.Wrapf(types.ErrQueueInconsistency, "contract %d is not a running subscription", nftID)
	}

	if !c.TermsAccepted {
		return k.endWithReason(ctx, nftID, c, "", types.AttributeValueTermsRejected)
	}

	if maxDuration := c.Duration.MaxDuration; maxDuration != 0 && due-*c.StartBlock >= maxDuration {
		return k.endWithReason(ctx, nftID, c, "", types.AttributeValueMaxDuration)
	}

	if err := k.payRentFee(ctx, c.Rentee, c.Renter, c.RentFee); err != nil {
		k.Logger(ctx).Info("subscription payment failed", "nft_id", nftID, "rentee", c.Rentee, "err", err)
		return k.endWithReason(ctx, nftID, c, c.Rentee, types.AttributeValuePaymentFailed)
	}

	next := due + c.Duration.Period
	if err := k.queue(ctx, subscriptionQueue).Insert(nftID, next); err != nil {
		return errorsmod.Wrap(types.ErrQueueInconsistency, err.Error())
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractSubscriptionRenewed,
			nftAttr(nftID),
			sdk.NewAttribute(types.AttributeKeyRentee, c.Rentee),
			sdk.NewAttribute(types.AttributeKeyRentFee, c.RentFee.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyNextRenewal, strconv.FormatUint(next, 10)),
		),
	)

	return nil
}

func (k *Keeper) endWithReason(ctx sdk.Context, nftID uint32, c types.RentContract, revoker, reason string) error {
	if err := k.endContract(ctx, nftID, c, revoker); err != nil {
		return err
	}

	attrs := []sdk.Attribute{
		nftAttr(nftID),
		sdk.NewAttribute(types.AttributeKeyRenter, c.Renter),
		sdk.NewAttribute(types.AttributeKeyRentee, c.Rentee),
		sdk.NewAttribute(types.AttributeKeyReason, reason),
	}
	if revoker != "" {
		attrs = append(attrs, sdk.NewAttribute(types.AttributeKeyRevokedBy, revoker))
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeContractEnded, attrs...))

	return nil
}

// forceRemove drops a contract whose resolution failed so it does not block
// later blocks. Reserved fees are returned when possible.
func (k *Keeper) forceRemove(ctx sdk.Context, nftID uint32, cause error) {
	k.Logger(ctx).Error(
		"failed to resolve rent contract",
		"nft_id", nftID,
		"err", cause,
	)

	if c, ok := k.GetContract(ctx, nftID); ok {
		err := timedtypes.Branch(ctx, func(ctx sdk.Context) error {
			return k.releaseFees(ctx, c)
		})
		if err != nil {
			k.Logger(ctx).Error("failed to return cancellation fees", "nft_id", nftID, "err", err)
		}
	}
	k.removeContract(ctx, nftID)

	if err := k.nftKeeper.SetFlag(ctx, nftID, nfttypes.FlagRented, false); err != nil {
		k.Logger(ctx).Error("failed to clear rented flag", "nft_id", nftID, "err", err)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractResolutionFailed,
			nftAttr(nftID),
			sdk.NewAttribute(types.AttributeKeyError, cause.Error()),
		),
	)
}
