package keeper

import (
	"context"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/x/nft/types"
)

// MsgServer is the wrapper for the nft module's msg service.
type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the nft MsgServer interface.
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{Keeper: keeper}
}

func (m MsgServer) CreateNFT(goCtx context.Context, msg *types.MsgCreateNFT) (*types.MsgCreateNFTResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	id, err := m.Keeper.CreateNFT(ctx, msg.Owner, msg.Offchain, msg.Royalty)
	if err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeNFTCreated,
			sdk.NewAttribute(types.AttributeKeyNFTID, strconv.FormatUint(uint64(id), 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
		),
	)

	return &types.MsgCreateNFTResponse{ID: id}, nil
}
