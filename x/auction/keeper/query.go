package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/tempo-labs/timed-contracts/x/auction/types"
)

// QueryServer defines the auction module's querier service.
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServer creates a new query server for the auction module.
func NewQueryServer(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Params queries all parameters of the auction module.
func (q QueryServer) Params(goCtx context.Context, _ *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	params, err := q.keeper.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	return &types.QueryParamsResponse{Params: params}, nil
}

// Auction queries the auction of a single NFT.
func (q QueryServer) Auction(goCtx context.Context, req *types.QueryAuctionRequest) (*types.QueryAuctionResponse, error) {
	a, ok := q.keeper.GetAuction(sdk.UnwrapSDKContext(goCtx), req.NFTID)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrAuctionNotFound, "nft %d", req.NFTID)
	}

	return &types.QueryAuctionResponse{Auction: a.ToRaw(req.NFTID)}, nil
}

// Auctions queries every live auction.
func (q QueryServer) Auctions(goCtx context.Context, _ *types.QueryAuctionsRequest) (*types.QueryAuctionsResponse, error) {
	return &types.QueryAuctionsResponse{Auctions: q.keeper.GetAuctions(sdk.UnwrapSDKContext(goCtx))}, nil
}

// Claim queries the outbid amount owed to an account.
func (q QueryServer) Claim(goCtx context.Context, req *types.QueryClaimRequest) (*types.QueryClaimResponse, error) {
	if req.Address == "" {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "empty address")
	}

	return &types.QueryClaimResponse{Amount: q.keeper.GetClaim(sdk.UnwrapSDKContext(goCtx), req.Address)}, nil
}

// Deadlines queries the deadline queue in processing order.
func (q QueryServer) Deadlines(goCtx context.Context, _ *types.QueryDeadlinesRequest) (*types.QueryDeadlinesResponse, error) {
	return &types.QueryDeadlinesResponse{Deadlines: q.keeper.GetDeadlines(sdk.UnwrapSDKContext(goCtx))}, nil
}
