package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

// MsgServer is the wrapper for the transmission module's msg service.
type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the transmission MsgServer interface.
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{Keeper: keeper}
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

func (m MsgServer) SetTransmissionProtocol(goCtx context.Context, msg *types.MsgSetTransmissionProtocol) (*types.MsgSetTransmissionProtocolResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	now := timedtypes.BlockNumber(ctx)

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	nft, ok := m.nftKeeper.GetNFT(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(nfttypes.ErrNFTNotFound, "id %d", msg.NFTID)
	}

	if nft.Owner != msg.Owner {
		return nil, types.ErrNotTheNFTOwner
	}

	if msg.Recipient == msg.Owner {
		return nil, types.ErrInvalidRecipient
	}

	if flag, busy := nft.State.FirstOf(busyFlags...); busy {
		return nil, errorsmod.Wrapf(types.ErrNFTIsBusy, "nft %d is %s", msg.NFTID, flag)
	}

	if err := msg.Protocol.Validate(params.MaxConsentListSize); err != nil {
		return nil, err
	}

	if msg.Protocol.IsTimed() {
		if err := checkBlock(params, now, msg.Protocol.Block); err != nil {
			return nil, err
		}
	}

	if err := msg.Cancellation.Validate(msg.Protocol); err != nil {
		return nil, err
	}
	if msg.Cancellation.Kind == types.CancellationUntilBlock && msg.Cancellation.Block <= now {
		return nil, errorsmod.Wrapf(types.ErrInvalidCancellationPeriod, "cancellation block %d is not in the future", msg.Cancellation.Block)
	}

	queue := m.queue(ctx)
	if msg.Protocol.IsTimed() && queue.IsFull() {
		return nil, types.ErrSimultaneousTransmissionLimitReached
	}

	fee := params.FeeFor(msg.Protocol.Kind)
	if fee.IsPositive() {
		collector, err := m.GetFeeCollector(ctx)
		if err != nil {
			return nil, err
		}
		if err := balancestypes.Transfer(ctx, m.bankKeeper, msg.Owner, collector, fee, balancestypes.KeepAlive); err != nil {
			return nil, err
		}
	}

	if err := m.nftKeeper.SetFlag(ctx, msg.NFTID, nfttypes.FlagTransmission, true); err != nil {
		return nil, err
	}

	t := types.TransmissionData{
		Owner:        msg.Owner,
		Recipient:    msg.Recipient,
		Protocol:     msg.Protocol,
		Cancellation: msg.Cancellation,
	}

	if t.Protocol.IsTimed() {
		if err := queue.Insert(msg.NFTID, t.Protocol.Block); err != nil {
			return nil, errorsmod.Wrapf(sdkerrors.ErrLogic, "queue insert: %s", err)
		}
	}
	m.setTransmission(ctx, msg.NFTID, t)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransmissionSet,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
			sdk.NewAttribute(types.AttributeKeyRecipient, msg.Recipient),
			sdk.NewAttribute(types.AttributeKeyProtocol, string(msg.Protocol.Kind)),
			sdk.NewAttribute(types.AttributeKeyBlock, strconv.FormatUint(msg.Protocol.Block, 10)),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
		),
	)

	return &types.MsgSetTransmissionProtocolResponse{}, nil
}

func (m MsgServer) RemoveTransmissionProtocol(goCtx context.Context, msg *types.MsgRemoveTransmissionProtocol) (*types.MsgRemoveTransmissionProtocolResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	t, ok := m.GetTransmission(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrTransmissionNotFound, "nft %d", msg.NFTID)
	}

	if t.Owner != msg.Owner {
		return nil, types.ErrNotTheNFTOwner
	}

	if err := t.Cancellation.CanCancel(timedtypes.BlockNumber(ctx)); err != nil {
		return nil, err
	}

	if err := m.nftKeeper.SetFlag(ctx, msg.NFTID, nfttypes.FlagTransmission, false); err != nil {
		return nil, err
	}
	m.removeTransmission(ctx, msg.NFTID)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransmissionRemoved,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
		),
	)

	return &types.MsgRemoveTransmissionProtocolResponse{}, nil
}

func (m MsgServer) ResetTimer(goCtx context.Context, msg *types.MsgResetTimer) (*types.MsgResetTimerResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	t, ok := m.GetTransmission(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrTransmissionNotFound, "nft %d", msg.NFTID)
	}

	if t.Owner != msg.Owner {
		return nil, types.ErrNotTheNFTOwner
	}

	if t.Protocol.Kind != types.ProtocolAtBlockWithReset {
		return nil, errorsmod.Wrapf(types.ErrProtocolTimerCannotBeReset, "protocol is %s", t.Protocol.Kind)
	}

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	if err := checkBlock(params, timedtypes.BlockNumber(ctx), msg.Block); err != nil {
		return nil, err
	}

	if t.Cancellation.Kind == types.CancellationUntilBlock && t.Cancellation.Block > msg.Block {
		return nil, errorsmod.Wrapf(types.ErrInvalidCancellationPeriod, "cancellation block %d is after transmission block %d", t.Cancellation.Block, msg.Block)
	}

	if !m.queue(ctx).Update(msg.NFTID, msg.Block) {
		return nil, errorsmod.Wrapf(types.ErrQueueInconsistency, "nft %d is not queued", msg.NFTID)
	}
	t.Protocol.Block = msg.Block
	m.setTransmission(ctx, msg.NFTID, t)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransmissionTimerReset,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyBlock, strconv.FormatUint(msg.Block, 10)),
		),
	)

	return &types.MsgResetTimerResponse{}, nil
}

func (m MsgServer) AddConsent(goCtx context.Context, msg *types.MsgAddConsent) (*types.MsgAddConsentResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	t, ok := m.GetTransmission(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrTransmissionNotFound, "nft %d", msg.NFTID)
	}

	if !t.Protocol.TakesConsents() {
		return nil, errorsmod.Wrapf(types.ErrConsentNotAllowed, "protocol is %s", t.Protocol.Kind)
	}

	if !t.Protocol.InConsentList(msg.Account) {
		return nil, types.ErrNotInConsentList
	}

	if t.HasConsented(msg.Account) {
		return nil, types.ErrAlreadyConsented
	}

	reached := t.ThresholdReached()
	t.Consents = append(t.Consents, msg.Account)
	m.setTransmission(ctx, msg.NFTID, t)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeConsentAdded,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyFrom, msg.Account),
			sdk.NewAttribute(types.AttributeKeyConsents, strconv.Itoa(len(t.Consents))),
		),
	)

	if reached || !t.ThresholdReached() {
		return &types.MsgAddConsentResponse{}, nil
	}

	if t.Protocol.Kind == types.ProtocolOnConsent {
		if err := m.transmit(ctx, msg.NFTID, t); err != nil {
			return nil, err
		}

		return &types.MsgAddConsentResponse{Transmitted: true}, nil
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeThresholdReached,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyBlock, strconv.FormatUint(t.Protocol.Block, 10)),
		),
	)

	return &types.MsgAddConsentResponse{}, nil
}
