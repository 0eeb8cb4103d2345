package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

// MsgServer is the wrapper for the rent module's msg service.
type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the rent MsgServer interface.
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

func (m MsgServer) CreateContract(goCtx context.Context, msg *types.MsgCreateContract) (*types.MsgCreateContractResponse, error) {
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

	if nft.Owner != msg.Renter {
		return nil, types.ErrNotTheNFTOwner
	}

	if m.HasContract(ctx, msg.NFTID) {
		return nil, types.ErrContractAlreadyExists
	}

	if flag, busy := nft.State.FirstOf(busyFlags...); busy {
		return nil, errorsmod.Wrapf(types.ErrNFTIsBusy, "nft %d is %s", msg.NFTID, flag)
	}

	if len(msg.AcceptanceType.AllowList) > int(params.AccountSizeLimit) {
		return nil, errorsmod.Wrapf(types.ErrAllowListTooLong, "maximum is %d", params.AccountSizeLimit)
	}

	if err := types.ValidateTerms(
		msg.NFTID,
		msg.Duration,
		msg.AcceptanceType,
		msg.RentFee,
		msg.RenterCancellationFee,
		msg.RenteeCancellationFee,
	); err != nil {
		return nil, err
	}

	if msg.RentFee.Kind == types.FeeNFT {
		if _, ok := m.nftKeeper.GetNFT(ctx, msg.RentFee.NFTID); !ok {
			return nil, errorsmod.Wrapf(types.ErrInvalidFee, "rent fee nft %d does not exist", msg.RentFee.NFTID)
		}
	}

	available := m.queue(ctx, availableQueue)
	if available.IsFull() {
		return nil, types.ErrMaxSimultaneousContractReached
	}

	if err := m.reserveCancellationFee(ctx, msg.Renter, msg.RenterCancellationFee); err != nil {
		return nil, err
	}

	if err := m.nftKeeper.SetFlag(ctx, msg.NFTID, nfttypes.FlagRented, true); err != nil {
		return nil, err
	}

	if err := available.Insert(msg.NFTID, now+params.ContractExpirationDuration); err != nil {
		return nil, errorsmod.Wrap(types.ErrQueueInconsistency, err.Error())
	}

	c := types.RentContract{
		CreationBlock:         now,
		Renter:                msg.Renter,
		Duration:              msg.Duration,
		AcceptanceType:        msg.AcceptanceType,
		RenterCanRevoke:       msg.RenterCanRevoke,
		RentFee:               msg.RentFee,
		RenterCancellationFee: msg.RenterCancellationFee,
		RenteeCancellationFee: msg.RenteeCancellationFee,
	}
	m.setContract(ctx, msg.NFTID, c)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractCreated,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyRenter, msg.Renter),
			sdk.NewAttribute(types.AttributeKeyDuration, string(msg.Duration.Kind)),
		),
	)

	return &types.MsgCreateContractResponse{}, nil
}

func (m MsgServer) CancelContract(goCtx context.Context, msg *types.MsgCancelContract) (*types.MsgCancelContractResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	c, ok := m.GetContract(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrContractNotFound, "nft %d", msg.NFTID)
	}

	if c.Renter != msg.Renter {
		return nil, types.ErrNotTheRenter
	}

	if c.HasStarted() {
		return nil, types.ErrContractHasStarted
	}

	if err := m.endContract(ctx, msg.NFTID, c, ""); err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractCancelled,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyRenter, msg.Renter),
		),
	)

	return &types.MsgCancelContractResponse{}, nil
}

func (m MsgServer) Rent(goCtx context.Context, msg *types.MsgRent) (*types.MsgRentResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	c, ok := m.GetContract(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrContractNotFound, "nft %d", msg.NFTID)
	}

	if c.HasStarted() {
		return nil, types.ErrContractHasStarted
	}

	if c.Renter == msg.Rentee {
		return nil, types.ErrCannotRentOwnContract
	}

	if !c.AcceptanceType.Allows(msg.Rentee) {
		return nil, types.ErrNotAuthorizedForContract
	}

	if c.AcceptanceType.Kind == types.AcceptanceAuto {
		if err := m.startContract(ctx, msg.NFTID, c, msg.Rentee); err != nil {
			return nil, err
		}

		return &types.MsgRentResponse{Started: true}, nil
	}

	if m.hasOffer(ctx, msg.NFTID, msg.Rentee) {
		return nil, types.ErrOfferAlreadyExists
	}

	params, err := m.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	offers := m.GetOffers(ctx, msg.NFTID)
	if len(offers) >= int(params.AccountSizeLimit) {
		return nil, errorsmod.Wrapf(types.ErrMaxOfferReached, "maximum is %d", params.AccountSizeLimit)
	}

	// fee nfts must be deliverable when the renter accepts
	if err := m.checkRenteeFees(ctx, c, msg.Rentee); err != nil {
		return nil, err
	}

	m.setOffers(ctx, msg.NFTID, append(offers, msg.Rentee))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractOffered,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyRentee, msg.Rentee),
		),
	)

	return &types.MsgRentResponse{Started: false}, nil
}

func (m MsgServer) AcceptRentOffer(goCtx context.Context, msg *types.MsgAcceptRentOffer) (*types.MsgAcceptRentOfferResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	c, ok := m.GetContract(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrContractNotFound, "nft %d", msg.NFTID)
	}

	if c.Renter != msg.Renter {
		return nil, types.ErrNotTheRenter
	}

	if c.HasStarted() {
		return nil, types.ErrContractHasStarted
	}

	if c.AcceptanceType.Kind != types.AcceptanceManual {
		return nil, types.ErrManualAcceptanceOnly
	}

	if !m.hasOffer(ctx, msg.NFTID, msg.Rentee) {
		return nil, types.ErrOfferNotFound
	}

	if err := m.startContract(ctx, msg.NFTID, c, msg.Rentee); err != nil {
		return nil, err
	}

	return &types.MsgAcceptRentOfferResponse{}, nil
}

func (m MsgServer) RetractRentOffer(goCtx context.Context, msg *types.MsgRetractRentOffer) (*types.MsgRetractRentOfferResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if !m.HasContract(ctx, msg.NFTID) {
		return nil, errorsmod.Wrapf(types.ErrContractNotFound, "nft %d", msg.NFTID)
	}

	if !m.removeOffer(ctx, msg.NFTID, msg.Rentee) {
		return nil, types.ErrOfferNotFound
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractOfferRetracted,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyRentee, msg.Rentee),
		),
	)

	return &types.MsgRetractRentOfferResponse{}, nil
}

func (m MsgServer) RevokeContract(goCtx context.Context, msg *types.MsgRevokeContract) (*types.MsgRevokeContractResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	c, ok := m.GetContract(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrContractNotFound, "nft %d", msg.NFTID)
	}

	if !c.HasStarted() {
		return nil, types.ErrContractHasNotStarted
	}

	if msg.Revoker != c.Renter && msg.Revoker != c.Rentee {
		return nil, types.ErrNotAParty
	}

	if msg.Revoker == c.Renter && !c.RenterCanRevoke {
		return nil, types.ErrRenterCannotRevoke
	}

	if err := m.endContract(ctx, msg.NFTID, c, msg.Revoker); err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractRevoked,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyRenter, c.Renter),
			sdk.NewAttribute(types.AttributeKeyRentee, c.Rentee),
			sdk.NewAttribute(types.AttributeKeyRevokedBy, msg.Revoker),
		),
	)

	return &types.MsgRevokeContractResponse{}, nil
}

func (m MsgServer) ChangeSubscriptionTerms(goCtx context.Context, msg *types.MsgChangeSubscriptionTerms) (*types.MsgChangeSubscriptionTermsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	c, ok := m.GetContract(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrContractNotFound, "nft %d", msg.NFTID)
	}

	if c.Renter != msg.Renter {
		return nil, types.ErrNotTheRenter
	}

	if !c.HasStarted() {
		return nil, types.ErrContractHasNotStarted
	}

	if !c.Duration.IsSubscription() || !c.Duration.IsChangeable {
		return nil, types.ErrContractTermsNotChangeable
	}

	duration := msg.Duration()
	if err := duration.Validate(); err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidDuration, err.Error())
	}

	if !timedtypes.IsPositive(msg.RentFee) {
		return nil, errorsmod.Wrap(types.ErrInvalidFee, "rent fee must be positive")
	}

	c.Duration = duration
	c.RentFee = types.TokensRentFee(msg.RentFee)
	c.TermsAccepted = false
	m.setContract(ctx, msg.NFTID, c)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractTermsChanged,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyPeriod, strconv.FormatUint(msg.Period, 10)),
			sdk.NewAttribute(types.AttributeKeyMaxDuration, strconv.FormatUint(msg.MaxDuration, 10)),
			sdk.NewAttribute(types.AttributeKeyRentFee, msg.RentFee.String()),
		),
	)

	return &types.MsgChangeSubscriptionTermsResponse{}, nil
}

func (m MsgServer) AcceptSubscriptionTerms(goCtx context.Context, msg *types.MsgAcceptSubscriptionTerms) (*types.MsgAcceptSubscriptionTermsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	c, ok := m.GetContract(ctx, msg.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrContractNotFound, "nft %d", msg.NFTID)
	}

	if !c.HasStarted() {
		return nil, types.ErrContractHasNotStarted
	}

	if c.Rentee != msg.Rentee {
		return nil, types.ErrNotTheRentee
	}

	if c.TermsAccepted {
		return nil, types.ErrTermsAlreadyAccepted
	}

	if c.Duration.Period != msg.Period ||
		c.Duration.MaxDuration != msg.MaxDuration ||
		!c.RentFee.Equal(types.TokensRentFee(msg.RentFee)) {
		return nil, types.ErrTermsMismatch
	}

	c.TermsAccepted = true
	m.setContract(ctx, msg.NFTID, c)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeContractTermsAccepted,
			nftAttr(msg.NFTID),
			sdk.NewAttribute(types.AttributeKeyRentee, msg.Rentee),
		),
	)

	return &types.MsgAcceptSubscriptionTermsResponse{}, nil
}
