package types

import (
	"github.com/tempo-labs/timed-contracts/deadline"
)

type (
	QueryParamsRequest  struct{}
	QueryParamsResponse struct {
		Params Params `json:"params"`
	}

	QueryContractRequest struct {
		NFTID uint32 `json:"nft_id"`
	}
	QueryContractResponse struct {
		Contract RawRentContract `json:"contract"`
		Offers   []string        `json:"offers"`
	}

	QueryContractsRequest  struct{}
	QueryContractsResponse struct {
		Contracts []RawRentContract `json:"contracts"`
	}

	QueryQueuesRequest  struct{}
	QueryQueuesResponse struct {
		Available    []deadline.Entry[uint32] `json:"available"`
		Fixed        []deadline.Entry[uint32] `json:"fixed"`
		Subscription []deadline.Entry[uint32] `json:"subscription"`
	}
)
