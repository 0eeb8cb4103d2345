package types

import (
	"github.com/tempo-labs/timed-contracts/deadline"
)

type (
	QueryParamsRequest  struct{}
	QueryParamsResponse struct {
		Params Params `json:"params"`
	}

	QueryTransmissionRequest struct {
		NFTID uint32 `json:"nft_id"`
	}
	QueryTransmissionResponse struct {
		Transmission RawTransmission `json:"transmission"`
	}

	QueryTransmissionsRequest  struct{}
	QueryTransmissionsResponse struct {
		Transmissions []RawTransmission `json:"transmissions"`
	}

	QueryQueueRequest  struct{}
	QueryQueueResponse struct {
		Queue []deadline.Entry[uint32] `json:"queue"`
	}
)
