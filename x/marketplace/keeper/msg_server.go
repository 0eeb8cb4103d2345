package keeper

import (
	"context"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/x/marketplace/types"
)

// MsgServer is the wrapper for the marketplace module's msg service.
type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the marketplace MsgServer interface.
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{Keeper: keeper}
}

func (m MsgServer) CreateMarketplace(goCtx context.Context, msg *types.MsgCreateMarketplace) (*types.MsgCreateMarketplaceResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	id, err := m.Keeper.CreateMarketplace(ctx, msg.Owner, msg.CommissionFee)
	if err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMarketplaceCreated,
			sdk.NewAttribute(types.AttributeKeyMarketplaceID, strconv.FormatUint(uint64(id), 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
		),
	)

	return &types.MsgCreateMarketplaceResponse{ID: id}, nil
}
