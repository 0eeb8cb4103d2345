package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

// QueryServer defines the rent module's querier service.
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServer creates a new query server for the rent module.
func NewQueryServer(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Params queries all parameters of the rent module.
func (q QueryServer) Params(goCtx context.Context, _ *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	params, err := q.keeper.GetParams(sdk.UnwrapSDKContext(goCtx))
	if err != nil {
		return nil, err
	}

	return &types.QueryParamsResponse{Params: params}, nil
}

// Contract queries the contract of a single NFT and its pending offers.
func (q QueryServer) Contract(goCtx context.Context, req *types.QueryContractRequest) (*types.QueryContractResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	c, ok := q.keeper.GetContract(ctx, req.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrContractNotFound, "nft %d", req.NFTID)
	}

	return &types.QueryContractResponse{
		Contract: c.ToRaw(req.NFTID),
		Offers:   q.keeper.GetOffers(ctx, req.NFTID),
	}, nil
}

// Contracts queries every live contract.
func (q QueryServer) Contracts(goCtx context.Context, _ *types.QueryContractsRequest) (*types.QueryContractsResponse, error) {
	return &types.QueryContractsResponse{Contracts: q.keeper.GetContracts(sdk.UnwrapSDKContext(goCtx))}, nil
}

// Queues queries the three deadline queues in processing order.
func (q QueryServer) Queues(goCtx context.Context, _ *types.QueryQueuesRequest) (*types.QueryQueuesResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	return &types.QueryQueuesResponse{
		Available:    q.keeper.GetAvailableQueue(ctx),
		Fixed:        q.keeper.GetFixedQueue(ctx),
		Subscription: q.keeper.GetSubscriptionQueue(ctx),
	}, nil
}
