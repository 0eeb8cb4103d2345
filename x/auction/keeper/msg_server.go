package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
)

// MsgServer is the wrapper for the auction module's msg service.
type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the auction MsgServer interface.
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{Keeper: keeper}
}

func nftAttr(nftID uint32) sdk.Attribute {
	return sdk.NewAttribute(types.AttributeKeyNFTID, strconv.FormatUint(uint64(nftID), 10))
}

func (m MsgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	// ensure that the message signer is the authority
	if msg.Authority != m.authority {
		return nil, errorsmod.Wrapf(sdkerrors.ErrUnauthorized, "this message can only be executed by the authority; expected %s, got %s", m.authority, msg.Authority)
	}

	if err := m.SetParams(ctx, msg.Params); err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidParams, err.Error())
	}

	return &types.MsgUpdateParamsResponse{}, nil
}

func (m MsgServer) CreateAuction(goCtx context.Context, msg *types.MsgCreateAuction) (*types.MsgCreateAuctionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	now := timedtypes.BlockNumber(ctx)

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	if msg.StartBlock < now {
		return nil, errorsmod.Wrapf(types.ErrAuctionCannotStartInThePast, "start %d, current block %d", msg.StartBlock, now)
	}

	if msg.StartBlock-now > params.MaxAuctionDelay {
		return nil, errorsmod.Wrapf(types.ErrAuctionStartIsTooFarAway, "start %d is more than %d blocks away", msg.StartBlock, params.MaxAuctionDelay)
	}

	if msg.EndBlock <= msg.StartBlock || msg.EndBlock-msg.StartBlock < params.MinAuctionDuration {
		return nil, errorsmod.Wrapf(types.ErrAuctionTimeTooShort, "minimum is %d blocks", params.MinAuctionDuration)
	}

	if msg.EndBlock-msg.StartBlock > params.MaxAuctionDuration {
		return nil, errorsmod.Wrapf(types.ErrAuctionTimeTooLong, "maximum is %d blocks", params.MaxAuctionDuration)
	}

	if msg.BuyItPrice != nil && msg.BuyItPrice.LTE(msg.StartPrice) {
		return nil, types.ErrBuyItPriceTooLow
	}

	nft, ok := m.nftKeeper.GetNFT(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(nfttypes.ErrNFTNotFound, "id %d", msg.NFTID)
	}

	if nft.Owner != msg.Creator {
		return nil, types.ErrNotTheNFTOwner
	}

	if m.HasAuction(ctx, msg.NFTID) {
		return nil, types.ErrNFTAlreadyAuctioned
	}

	if flag, busy := nft.State.FirstOf(busyFlags...); busy {
		return nil, errorsmod.Wrapf(types.ErrNFTIsBusy, "nft %d is %s", msg.NFTID, flag)
	}

	if _, ok := m.marketplaceKeeper.GetMarketplace(ctx, msg.MarketplaceID); !ok {
		return nil, errorsmod.Wrapf(types.ErrMarketplaceNotFound, "marketplace %d", msg.MarketplaceID)
	}

	deadlines := m.deadlines(ctx)
	if deadlines.IsFull() {
		return nil, types.ErrMaxAuctionReached
	}

	if err := m.nftKeeper.SetFlag(ctx, msg.NFTID, nfttypes.FlagListed, true); err != nil {
		return nil, err
	}

	if err := deadlines.Insert(msg.NFTID, msg.EndBlock); err != nil {
		return nil, errorsmod.Wrap(types.ErrMaxAuctionReached, err.Error())
	}

	m.setAuction(ctx, msg.NFTID, types.AuctionData{
		Creator:       msg.Creator,
		StartBlock:    msg.StartBlock,
		EndBlock:      msg.EndBlock,
		StartPrice:    msg.StartPrice,
		BuyItPrice:    msg.BuyItPrice,
		Bidders:       types.NewBidderList(int(params.BidderListLimit)),
		MarketplaceID: msg.MarketplaceID,
	})

	attrs := []sdk.Attribute{
		nftAttr(msg.NFTID),
		sdk.NewAttribute(types.AttributeKeyCreator, msg.Creator),
		sdk.NewAttribute(types.AttributeKeyMarketplaceID, strconv.FormatUint(uint64(msg.MarketplaceID), 10)),
		sdk.NewAttribute(types.AttributeKeyStartBlock, strconv.FormatUint(msg.StartBlock, 10)),
		sdk.NewAttribute(types.AttributeKeyEndBlock, strconv.FormatUint(msg.EndBlock, 10)),
		sdk.NewAttribute(types.AttributeKeyStartPrice, msg.StartPrice.String()),
	}
	if msg.BuyItPrice != nil {
		attrs = append(attrs, sdk.NewAttribute(types.AttributeKeyBuyItPrice, msg.BuyItPrice.String()))
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeAuctionCreated, attrs...))

	return &types.MsgCreateAuctionResponse{}, nil
}

func (m MsgServer) CancelAuction(goCtx context.Context, msg *types.MsgCancelAuction) (*types.MsgCancelAuctionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	a, ok := m.GetAuction(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrAuctionNotFound, "nft %d", msg.NFTID)
	}

	if a.Creator != msg.Creator {
		return nil, types.ErrNotTheAuctionCreator
	}

	if a.HasStarted(timedtypes.BlockNumber(ctx)) {
		return nil, types.ErrCannotCancelAuctionInProgress
	}

	if err := m.nftKeeper.SetFlag(ctx, msg.NFTID, nfttypes.FlagListed, false); err != nil {
		return nil, err
	}

	m.removeAuction(ctx, msg.NFTID)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAuctionCancelled,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyReason, types.AttributeValueCreator),
		),
	)

	return &types.MsgCancelAuctionResponse{}, nil
}

func (m MsgServer) EndAuction(goCtx context.Context, msg *types.MsgEndAuction) (*types.MsgEndAuctionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	a, ok := m.GetAuction(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrAuctionNotFound, "nft %d", msg.NFTID)
	}

	if a.Creator != msg.Creator {
		return nil, types.ErrNotTheAuctionCreator
	}

	if !a.IsExtended {
		return nil, types.ErrAuctionNotExtended
	}

	if err := m.completeAuction(ctx, msg.NFTID, types.AttributeValueCreator); err != nil {
		return nil, err
	}

	return &types.MsgEndAuctionResponse{}, nil
}

func (m MsgServer) AddBid(goCtx context.Context, msg *types.MsgAddBid) (*types.MsgAddBidResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	now := timedtypes.BlockNumber(ctx)

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	a, ok := m.GetAuction(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrAuctionNotFound, "nft %d", msg.NFTID)
	}

	if !a.HasStarted(now) {
		return nil, errorsmod.Wrapf(types.ErrAuctionNotStarted, "starts at block %d", a.StartBlock)
	}

	if now >= a.EndBlock {
		return nil, types.ErrAuctionEnded
	}

	if msg.Bidder == a.Creator {
		return nil, types.ErrCannotBidOnOwnAuction
	}

	if msg.Amount.LTE(a.StartPrice) {
		return nil, errorsmod.Wrapf(types.ErrBidBelowStartPrice, "start price is %s", a.StartPrice)
	}

	if highest, ok := a.Bidders.HighestBid(); ok && msg.Amount.LTE(highest.Amount) {
		return nil, errorsmod.Wrapf(types.ErrBidBelowHighestBid, "highest bid is %s", highest.Amount)
	}

	// a bidder holds a single bid, the previous one is returned first
	if previous, ok := a.Bidders.RemoveBid(msg.Bidder); ok {
		if err := m.refund(ctx, previous.Bidder, previous.Amount); err != nil {
			return nil, err
		}
	}

	if err := m.escrow(ctx, msg.Bidder, msg.Amount); err != nil {
		return nil, err
	}

	if dropped, ok := a.Bidders.InsertNewBid(msg.Bidder, msg.Amount); ok {
		if err := m.refund(ctx, dropped.Bidder, dropped.Amount); err != nil {
			return nil, err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBidDropped,
				nftAttr(msg.NFTID),
				sdk.NewAttribute(types.AttributeKeyBidder, dropped.Bidder),
				sdk.NewAttribute(types.AttributeKeyAmount, dropped.Amount.String()),
			),
		)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBidAdded,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyBidder, msg.Bidder),
			sdk.NewAttribute(types.AttributeKeyAmount, msg.Amount.String()),
		),
	)

	if a.InEndingPeriod(now, params.AuctionEndingPeriod) {
		// the end block only ever moves forward
		end := max(a.EndBlock, now+params.AuctionGracePeriod)
		if end != a.EndBlock || !a.IsExtended {
			a.EndBlock = end
			a.IsExtended = true
			if !m.deadlines(ctx).Update(msg.NFTID, end) {
				return nil, errorsmod.Wrapf(types.ErrDeadlineInconsistency, "no deadline for nft %d", msg.NFTID)
			}

			ctx.EventManager().EmitEvent(
				sdk.NewEvent(
					types.EventTypeAuctionExtended,
					nftAttr(msg.NFTID),
					sdk.NewAttribute(types.AttributeKeyEndBlock, strconv.FormatUint(end, 10)),
				),
			)
		}
	}

	m.setAuction(ctx, msg.NFTID, a)

	return &types.MsgAddBidResponse{}, nil
}

func (m MsgServer) RemoveBid(goCtx context.Context, msg *types.MsgRemoveBid) (*types.MsgRemoveBidResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	a, ok := m.GetAuction(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrAuctionNotFound, "nft %d", msg.NFTID)
	}

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	if a.InEndingPeriod(timedtypes.BlockNumber(ctx), params.AuctionEndingPeriod) {
		return nil, types.ErrCannotRemoveBidAtEndOfAuction
	}

	bid, ok := a.Bidders.RemoveBid(msg.Bidder)
	if !ok {
		return nil, types.ErrBidNotFound
	}

	if err := m.refund(ctx, bid.Bidder, bid.Amount); err != nil {
		return nil, err
	}

	m.setAuction(ctx, msg.NFTID, a)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBidRemoved,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyBidder, bid.Bidder),
			sdk.NewAttribute(types.AttributeKeyAmount, bid.Amount.String()),
		),
	)

	return &types.MsgRemoveBidResponse{}, nil
}

func (m MsgServer) BuyItNow(goCtx context.Context, msg *types.MsgBuyItNow) (*types.MsgBuyItNowResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	a, ok := m.GetAuction(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrAuctionNotFound, "nft %d", msg.NFTID)
	}

	if a.BuyItPrice == nil {
		return nil, types.ErrBuyItNowNotSupported
	}
	price := *a.BuyItPrice

	if !a.HasStarted(timedtypes.BlockNumber(ctx)) {
		return nil, errorsmod.Wrapf(types.ErrAuctionNotStarted, "starts at block %d", a.StartBlock)
	}

	if msg.Buyer == a.Creator {
		return nil, types.ErrCannotBidOnOwnAuction
	}

	if highest, ok := a.Bidders.HighestBid(); ok && highest.Amount.GTE(price) {
		return nil, types.ErrBidAboveBuyItPrice
	}

	for _, b := range a.Bidders.Bids() {
		if err := m.refund(ctx, b.Bidder, b.Amount); err != nil {
			return nil, err
		}
	}

	commission, royalty, err := m.payout(ctx, msg.Buyer, msg.NFTID, a, price, balancestypes.KeepAlive)
	if err != nil {
		return nil, err
	}

	if err := m.nftKeeper.SetOwner(ctx, msg.NFTID, msg.Buyer); err != nil {
		return nil, err
	}

	if err := m.nftKeeper.SetFlag(ctx, msg.NFTID, nfttypes.FlagListed, false); err != nil {
		return nil, err
	}

	m.removeAuction(ctx, msg.NFTID)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAuctionCompleted,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyNewOwner, msg.Buyer),
			sdk.NewAttribute(types.AttributeKeyAmount, price.String()),
			sdk.NewAttribute(types.AttributeKeyCommission, commission.String()),
			sdk.NewAttribute(types.AttributeKeyRoyalty, royalty.String()),
			sdk.NewAttribute(types.AttributeKeyReason, types.AttributeValueBuyItNow),
		),
	)

	return &types.MsgBuyItNowResponse{}, nil
}

func (m MsgServer) Claim(goCtx context.Context, msg *types.MsgClaim) (*types.MsgClaimResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	amount := m.GetClaim(ctx, msg.Claimer)
	if amount.IsZero() {
		return nil, types.ErrClaimNotFound
	}

	if err := m.refund(ctx, msg.Claimer, amount); err != nil {
		return nil, err
	}

	m.setClaim(ctx, msg.Claimer, math.ZeroInt())

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBalanceClaimed,
			sdk.NewAttribute(types.AttributeKeyBidder, msg.Claimer),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	return &types.MsgClaimResponse{Amount: amount}, nil
}
