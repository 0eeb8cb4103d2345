package keeper

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
)

// busyFlags are the NFT states that forbid listing the NFT in an auction.
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

// transfer moves amount between accounts through the bank keeper.
func (k *Keeper) transfer(ctx sdk.Context, from, to string, amount math.Int, req balancestypes.ExistenceRequirement) error {
	return balancestypes.Transfer(ctx, k.bankKeeper, from, to, amount, req)
}

// escrow moves a bid from the bidder into the module account.
func (k *Keeper) escrow(ctx sdk.Context, bidder string, amount math.Int) error {
	return k.transfer(ctx, bidder, escrowAddress(), amount, balancestypes.KeepAlive)
}

// refund returns an escrowed amount to addr. The escrow is a module account,
// so AllowDeath never reaps it.
func (k *Keeper) refund(ctx sdk.Context, addr string, amount math.Int) error {
	return k.transfer(ctx, escrowAddress(), addr, amount, balancestypes.AllowDeath)
}

// payout splits price between the marketplace owner, the NFT creator and the
// auction creator. The marketplace commission is taken first and the royalty
// applies to what is left.
func (k *Keeper) payout(
	ctx sdk.Context,
	from string,
	nftID uint32,
	a types.AuctionData,
	price math.Int,
	req balancestypes.ExistenceRequirement,
) (commission, royalty math.Int, err error) {
	mp, ok := k.marketplaceKeeper.GetMarketplace(ctx, a.MarketplaceID)
	if !ok {
		return math.Int{}, math.Int{}, errorsmod.Wrapf(types.ErrMarketplaceNotFound, "marketplace %d", a.MarketplaceID)
	}

	nft, ok := k.nftKeeper.GetNFT(ctx, nftID)
	if !ok {
		return math.Int{}, math.Int{}, errorsmod.Wrapf(nfttypes.ErrNFTNotFound, "id %d", nftID)
	}

	commission = mp.CommissionFee.MulTruncate(price)
	royalty = nft.Royalty.MulTruncate(timedtypes.SaturatingSub(price, commission))
	remainder := timedtypes.SaturatingSub(timedtypes.SaturatingSub(price, commission), royalty)

	if err := k.transfer(ctx, from, mp.Owner, commission, req); err != nil {
		return math.Int{}, math.Int{}, err
	}

	if err := k.transfer(ctx, from, nft.Creator, royalty, req); err != nil {
		return math.Int{}, math.Int{}, err
	}

	if err := k.transfer(ctx, from, a.Creator, remainder, req); err != nil {
		return math.Int{}, math.Int{}, err
	}

	return commission, royalty, nil
}

// completeAuction resolves the auction of nftID. The highest bid wins and the
// remaining bids become claims. Without bids the NFT goes back to the creator.
func (k *Keeper) completeAuction(ctx sdk.Context, nftID uint32, reason string) error {
	a, ok := k.GetAuction(ctx, nftID)
	if !ok {
		return errorsmod.Wrapf(types.ErrDeadlineInconsistency, "no auction for nft %d", nftID)
	}

	if err := k.nftKeeper.SetFlag(ctx, nftID, nfttypes.FlagListed, false); err != nil {
		return err
	}

	winner, ok := a.Bidders.RemoveHighestBid()
	if !ok {
		k.removeAuction(ctx, nftID)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAuctionCancelled,
				sdk.NewAttribute(types.AttributeKeyNFTID, strconv.FormatUint(uint64(nftID), 10)),
				sdk.NewAttribute(types.AttributeKeyReason, types.AttributeValueNoBids),
			),
		)

		return nil
	}

	commission, royalty, err := k.payout(ctx, escrowAddress(), nftID, a, winner.Amount, balancestypes.AllowDeath)
	if err != nil {
		return err
	}

	if err := k.nftKeeper.SetOwner(ctx, nftID, winner.Bidder); err != nil {
		return err
	}

	for _, b := range a.Bidders.Bids() {
		k.addClaim(ctx, b.Bidder, b.Amount)
	}

	k.removeAuction(ctx, nftID)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAuctionCompleted,
			sdk.NewAttribute(types.AttributeKeyNFTID, strconv.FormatUint(uint64(nftID), 10)),
			sdk.NewAttribute(types.AttributeKeyNewOwner, winner.Bidder),
			sdk.NewAttribute(types.AttributeKeyAmount, winner.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyCommission, commission.String()),
			sdk.NewAttribute(types.AttributeKeyRoyalty, royalty.String()),
			sdk.NewAttribute(types.AttributeKeyReason, reason),
		),
	)

	return nil
}

// forceRemove drops an auction whose resolution failed so it does not block
// later blocks. Escrowed bids are turned into claims.
func (k *Keeper) forceRemove(ctx sdk.Context, nftID uint32, cause error) {
	k.Logger(ctx).Error(
		"failed to resolve auction",
		"nft_id", nftID,
		"err", cause,
	)

	if a, ok := k.GetAuction(ctx, nftID); ok {
		for _, b := range a.Bidders.Bids() {
			k.addClaim(ctx, b.Bidder, b.Amount)
		}
	}
	k.removeAuction(ctx, nftID)

	if err := k.nftKeeper.SetFlag(ctx, nftID, nfttypes.FlagListed, false); err != nil {
		k.Logger(ctx).Error("failed to unlist nft", "nft_id", nftID, "err", err)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAuctionResolutionFailed,
			sdk.NewAttribute(types.AttributeKeyNFTID, strconv.FormatUint(uint64(nftID), 10)),
			sdk.NewAttribute(types.AttributeKeyError, cause.Error()),
		),
	)
}
