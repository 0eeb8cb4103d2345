package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

// QueryServer defines the transmission module's querier service.
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServer creates a new query server for the transmission module.
func NewQueryServer(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Params queries all parameters of the transmission module.
func (q QueryServer) Params(goCtx context.Context, _ *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	params, err := q.keeper.GetParams(sdk.UnwrapSDKContext(goCtx))
	if err != nil {
		return nil, err
	}

	return &types.QueryParamsResponse{Params: params}, nil
}

// Transmission queries the protocol set on a single NFT.
func (q QueryServer) Transmission(goCtx context.Context, req *types.QueryTransmissionRequest) (*types.QueryTransmissionResponse, error) {
	t, ok := q.keeper.GetTransmission(sdk.UnwrapSDKContext(goCtx), req.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrTransmissionNotFound, "nft %d", req.NFTID)
	}

	return &types.QueryTransmissionResponse{Transmission: t.ToRaw(req.NFTID)}, nil
}

// Transmissions queries every live protocol.
func (q QueryServer) Transmissions(goCtx context.Context, _ *types.QueryTransmissionsRequest) (*types.QueryTransmissionsResponse, error) {
	return &types.QueryTransmissionsResponse{Transmissions: q.keeper.GetTransmissions(sdk.UnwrapSDKContext(goCtx))}, nil
}

// Queue queries the deadline queue of timed protocols.
func (q QueryServer) Queue(goCtx context.Context, _ *types.QueryQueueRequest) (*types.QueryQueueResponse, error) {
	return &types.QueryQueueResponse{Queue: q.keeper.GetQueue(sdk.UnwrapSDKContext(goCtx))}, nil
}
