package types

import (
	"cosmossdk.io/math"

	"github.com/tempo-labs/timed-contracts/deadline"
)

type (
	QueryParamsRequest  struct{}
	QueryParamsResponse struct {
		Params Params `json:"params"`
	}

	QueryAuctionRequest struct {
		NFTID uint32 `json:"nft_id"`
	}
	QueryAuctionResponse struct {
		Auction RawAuction `json:"auction"`
	}

	QueryAuctionsRequest  struct{}
	QueryAuctionsResponse struct {
		Auctions []RawAuction `json:"auctions"`
	}

	QueryClaimRequest struct {
		Address string `json:"address"`
	}
	QueryClaimResponse struct {
		Amount math.Int `json:"amount"`
	}

	QueryDeadlinesRequest  struct{}
	QueryDeadlinesResponse struct {
		Deadlines []deadline.Entry[uint32] `json:"deadlines"`
	}
)
