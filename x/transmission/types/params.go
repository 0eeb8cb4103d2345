package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	DefaultMaxBlockDuration              uint64 = 5_256_000
	DefaultMaxConsentListSize            uint32 = 10
	DefaultSimultaneousTransmissionLimit uint32 = 1_000_000
	DefaultActionsInBlockLimit           uint32 = 1_000
	DefaultProtocolFee                          = math.ZeroInt()
)

// Params defines the transmission module parameters.
type Params struct {
	// MaxBlockDuration bounds how far in the future a transmission block may be.
	MaxBlockDuration uint64 `json:"max_block_duration"`
	// MaxConsentListSize bounds the consent list of consent protocols.
	MaxConsentListSize uint32 `json:"max_consent_list_size"`
	// SimultaneousTransmissionLimit is the capacity of the deadline queue.
	SimultaneousTransmissionLimit uint32 `json:"simultaneous_transmission_limit"`
	// ActionsInBlockLimit caps resolutions per block, zero meaning no cap.
	ActionsInBlockLimit uint32 `json:"actions_in_block_limit"`

	AtBlockFee          math.Int `json:"at_block_fee"`
	AtBlockWithResetFee math.Int `json:"at_block_with_reset_fee"`
	OnConsentFee        math.Int `json:"on_consent_fee"`
	OnConsentAtBlockFee math.Int `json:"on_consent_at_block_fee"`

	// FeeCollector receives protocol fees. When empty the keeper's
	// FeeCollectorProvider decides.
	FeeCollector string `json:"fee_collector,omitempty"`
}

// NewParams returns a new Params instance with the provided values.
func NewParams(
	maxBlockDuration uint64,
	maxConsentListSize uint32,
	simultaneousTransmissionLimit uint32,
	actionsInBlockLimit uint32,
	atBlockFee math.Int,
	atBlockWithResetFee math.Int,
	onConsentFee math.Int,
	onConsentAtBlockFee math.Int,
	feeCollector string,
) Params {
	return Params{
		MaxBlockDuration:              maxBlockDuration,
		MaxConsentListSize:            maxConsentListSize,
		SimultaneousTransmissionLimit: simultaneousTransmissionLimit,
		ActionsInBlockLimit:           actionsInBlockLimit,
		AtBlockFee:                    atBlockFee,
		AtBlockWithResetFee:           atBlockWithResetFee,
		OnConsentFee:                  onConsentFee,
		OnConsentAtBlockFee:           onConsentAtBlockFee,
		FeeCollector:                  feeCollector,
	}
}

// DefaultParams returns the default x/transmission parameters.
func DefaultParams() Params {
	return NewParams(
		DefaultMaxBlockDuration,
		DefaultMaxConsentListSize,
		DefaultSimultaneousTransmissionLimit,
		DefaultActionsInBlockLimit,
		DefaultProtocolFee,
		DefaultProtocolFee,
		DefaultProtocolFee,
		DefaultProtocolFee,
		"",
	)
}

// FeeFor returns the fee charged for setting a protocol of the given kind.
func (p Params) FeeFor(kind ProtocolKind) math.Int {
	switch kind {
	case ProtocolAtBlock:
		return p.AtBlockFee
	case ProtocolAtBlockWithReset:
		return p.AtBlockWithResetFee
	case ProtocolOnConsent:
		return p.OnConsentFee
	case ProtocolOnConsentAtBlock:
		return p.OnConsentAtBlockFee
	default:
		return math.ZeroInt()
	}
}

// Validate performs basic validation on the parameters.
func (p Params) Validate() error {
	if p.MaxBlockDuration == 0 {
		return fmt.Errorf("max block duration must be positive")
	}

	if p.MaxConsentListSize == 0 {
		return fmt.Errorf("max consent list size must be positive")
	}

	if p.SimultaneousTransmissionLimit == 0 {
		return fmt.Errorf("simultaneous transmission limit must be positive")
	}

	for _, kind := range ProtocolKinds {
		if fee := p.FeeFor(kind); fee.IsNil() || fee.IsNegative() {
			return fmt.Errorf("%s fee cannot be nil or negative", kind)
		}
	}

	if p.FeeCollector != "" {
		if _, err := sdk.AccAddressFromBech32(p.FeeCollector); err != nil {
			return fmt.Errorf("invalid fee collector address: %w", err)
		}
	}

	return nil
}
