package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/x/balances/types"
)

// MsgServer is the wrapper for the balances module's msg service.
type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the balances MsgServer interface.
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{Keeper: keeper}
}

func (m MsgServer) Transfer(goCtx context.Context, msg *types.MsgTransfer) (*types.MsgTransferResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.Keeper.Transfer(ctx, msg.From, msg.To, msg.Amount, msg.Requirement()); err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyFrom, msg.From),
			sdk.NewAttribute(types.AttributeKeyTo, msg.To),
			sdk.NewAttribute(types.AttributeKeyAmount, msg.Amount.String()),
		),
	)

	return &types.MsgTransferResponse{}, nil
}
