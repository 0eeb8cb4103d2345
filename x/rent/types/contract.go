package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// DurationKind tells how long a contract runs.
type DurationKind string

const (
	// DurationFixed contracts run for a fixed number of blocks.
	DurationFixed DurationKind = "fixed"
	// DurationSubscription contracts renew every period.
	DurationSubscription DurationKind = "subscription"
)

// Duration is the schedule of a contract.
type Duration struct {
	Kind DurationKind `json:"kind"`
	// Blocks is the length of a fixed contract.
	Blocks uint64 `json:"blocks,omitempty"`
	// Period is the renewal interval of a subscription.
	Period uint64 `json:"period,omitempty"`
	// MaxDuration ends a subscription once reached, zero meaning never.
	MaxDuration uint64 `json:"max_duration,omitempty"`
	// IsChangeable lets the renter change the subscription terms.
	IsChangeable bool `json:"is_changeable,omitempty"`
}

// FixedDuration returns a fixed duration of blocks.
func FixedDuration(blocks uint64) Duration {
	return Duration{Kind: DurationFixed, Blocks: blocks}
}

// SubscriptionDuration returns a subscription renewed every period.
func SubscriptionDuration(period, maxDuration uint64, changeable bool) Duration {
	return Duration{
		Kind:         DurationSubscription,
		Period:       period,
		MaxDuration:  maxDuration,
		IsChangeable: changeable,
	}
}

// IsSubscription reports whether d renews periodically.
func (d Duration) IsSubscription() bool {
	return d.Kind == DurationSubscription
}

// Validate checks the duration fields for its kind.
func (d Duration) Validate() error {
	switch d.Kind {
	case DurationFixed:
		if d.Blocks == 0 {
			return fmt.Errorf("fixed duration must be positive")
		}
	case DurationSubscription:
		if d.Period == 0 {
			return fmt.Errorf("subscription period must be positive")
		}
		if d.MaxDuration != 0 && d.MaxDuration < d.Period {
			return fmt.Errorf("max duration %d is shorter than the period %d", d.MaxDuration, d.Period)
		}
	default:
		return fmt.Errorf("unknown duration kind %q", d.Kind)
	}

	return nil
}

// AcceptanceKind tells how a rentee is chosen.
type AcceptanceKind string

const (
	// AcceptanceAuto starts the contract with the first eligible rentee.
	AcceptanceAuto AcceptanceKind = "auto"
	// AcceptanceManual collects offers the renter picks from.
	AcceptanceManual AcceptanceKind = "manual"
)

// AcceptanceType is the rentee selection rule. An empty allow list lets
// anyone rent.
type AcceptanceType struct {
	Kind      AcceptanceKind `json:"kind"`
	AllowList []string       `json:"allow_list,omitempty"`
}

// AutoAcceptance returns an automatic acceptance rule.
func AutoAcceptance(allowList ...string) AcceptanceType {
	return AcceptanceType{Kind: AcceptanceAuto, AllowList: allowList}
}

// ManualAcceptance returns a manual acceptance rule.
func ManualAcceptance(allowList ...string) AcceptanceType {
	return AcceptanceType{Kind: AcceptanceManual, AllowList: allowList}
}

// Allows reports whether addr may rent under this rule.
func (a AcceptanceType) Allows(addr string) bool {
	if len(a.AllowList) == 0 {
		return true
	}

	for _, allowed := range a.AllowList {
		if allowed == addr {
			return true
		}
	}

	return false
}

// Validate checks the kind and the allow list addresses.
func (a AcceptanceType) Validate() error {
	if a.Kind != AcceptanceAuto && a.Kind != AcceptanceManual {
		return fmt.Errorf("unknown acceptance kind %q", a.Kind)
	}

	for _, addr := range a.AllowList {
		if _, err := sdk.AccAddressFromBech32(addr); err != nil {
			return fmt.Errorf("invalid allow list address %q: %w", addr, err)
		}
	}

	return nil
}

// FeeKind tells what a fee is paid with.
type FeeKind string

const (
	FeeNone           FeeKind = "none"
	FeeTokens         FeeKind = "tokens"
	FeeFlexibleTokens FeeKind = "flexible_tokens"
	FeeNFT            FeeKind = "nft"
)

// RentFee is paid by the rentee to the renter when the contract starts and,
// for subscriptions, at every renewal.
type RentFee struct {
	Kind   FeeKind  `json:"kind"`
	Amount math.Int `json:"amount"`
	NFTID  uint32   `json:"nft_id,omitempty"`
}

// TokensRentFee returns a rent fee paid in tokens.
func TokensRentFee(amount math.Int) RentFee {
	return RentFee{Kind: FeeTokens, Amount: amount}
}

// NFTRentFee returns a rent fee paid with an NFT.
func NFTRentFee(nftID uint32) RentFee {
	return RentFee{Kind: FeeNFT, Amount: math.ZeroInt(), NFTID: nftID}
}

// Equal reports whether both fees are identical.
func (f RentFee) Equal(other RentFee) bool {
	if f.Kind != other.Kind {
		return false
	}
	if f.Kind == FeeNFT {
		return f.NFTID == other.NFTID
	}

	return !f.Amount.IsNil() && !other.Amount.IsNil() && f.Amount.Equal(other.Amount)
}

// Validate checks the fee fields for its kind.
func (f RentFee) Validate() error {
	switch f.Kind {
	case FeeTokens:
		if !timedtypes.IsPositive(f.Amount) {
			return fmt.Errorf("rent fee must be positive")
		}
	case FeeNFT:
	default:
		return fmt.Errorf("invalid rent fee kind %q", f.Kind)
	}

	return nil
}

// CancellationFee is reserved by a party when it joins a contract and paid
// to the other party when it revokes.
type CancellationFee struct {
	Kind   FeeKind  `json:"kind"`
	Amount math.Int `json:"amount"`
	NFTID  uint32   `json:"nft_id,omitempty"`
}

// NoCancellationFee returns an empty cancellation fee.
func NoCancellationFee() CancellationFee {
	return CancellationFee{Kind: FeeNone, Amount: math.ZeroInt()}
}

// FixedCancellationFee returns a cancellation fee paid in full on revocation.
func FixedCancellationFee(amount math.Int) CancellationFee {
	return CancellationFee{Kind: FeeTokens, Amount: amount}
}

// FlexibleCancellationFee returns a cancellation fee pro-rated by the
// remaining blocks of the contract.
func FlexibleCancellationFee(amount math.Int) CancellationFee {
	return CancellationFee{Kind: FeeFlexibleTokens, Amount: amount}
}

// NFTCancellationFee returns a cancellation fee paid with an NFT.
func NFTCancellationFee(nftID uint32) CancellationFee {
	return CancellationFee{Kind: FeeNFT, Amount: math.ZeroInt(), NFTID: nftID}
}

// IsTokens reports whether the fee is held in tokens.
func (f CancellationFee) IsTokens() bool {
	return f.Kind == FeeTokens || f.Kind == FeeFlexibleTokens
}

// Validate checks the fee fields for its kind.
func (f CancellationFee) Validate() error {
	switch f.Kind {
	case FeeNone, FeeNFT:
	case FeeTokens, FeeFlexibleTokens:
		if !timedtypes.IsPositive(f.Amount) {
			return fmt.Errorf("cancellation fee must be positive")
		}
	default:
		return fmt.Errorf("invalid cancellation fee kind %q", f.Kind)
	}

	return nil
}

type (
	// RentContract lends an NFT from a renter to a rentee.
	RentContract struct {
		CreationBlock         uint64
		StartBlock            *uint64
		Renter                string
		Rentee                string
		Duration              Duration
		AcceptanceType        AcceptanceType
		RenterCanRevoke       bool
		RentFee               RentFee
		RenterCancellationFee CancellationFee
		RenteeCancellationFee CancellationFee
		TermsAccepted         bool
	}

	// RawRentContract is the flat genesis form of a rent contract.
	RawRentContract struct {
		NFTID                 uint32          `json:"nft_id"`
		CreationBlock         uint64          `json:"creation_block"`
		StartBlock            *uint64         `json:"start_block,omitempty"`
		Renter                string          `json:"renter"`
		Rentee                string          `json:"rentee,omitempty"`
		Duration              Duration        `json:"duration"`
		AcceptanceType        AcceptanceType  `json:"acceptance_type"`
		RenterCanRevoke       bool            `json:"renter_can_revoke"`
		RentFee               RentFee         `json:"rent_fee"`
		RenterCancellationFee CancellationFee `json:"renter_cancellation_fee"`
		RenteeCancellationFee CancellationFee `json:"rentee_cancellation_fee"`
		TermsAccepted         bool            `json:"terms_accepted"`
	}
)

// HasStarted reports whether a rentee was accepted.
func (c RentContract) HasStarted() bool {
	return c.StartBlock != nil
}

// EndBlock returns the block a started fixed contract ends at.
func (c RentContract) EndBlock() (uint64, bool) {
	if c.StartBlock == nil || c.Duration.IsSubscription() {
		return 0, false
	}

	return *c.StartBlock + c.Duration.Blocks, true
}

// Clone returns a copy that shares no mutable state with c.
func (c RentContract) Clone() RentContract {
	out := c
	if c.StartBlock != nil {
		start := *c.StartBlock
		out.StartBlock = &start
	}
	if c.AcceptanceType.AllowList != nil {
		out.AcceptanceType.AllowList = append([]string(nil), c.AcceptanceType.AllowList...)
	}

	return out
}

// ValidateTerms checks the terms a renter may set.
func ValidateTerms(
	nftID uint32,
	duration Duration,
	acceptance AcceptanceType,
	rentFee RentFee,
	renterFee, renteeFee CancellationFee,
) error {
	if err := duration.Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidDuration, err.Error())
	}
	if err := acceptance.Validate(); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	if err := rentFee.Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidFee, err.Error())
	}
	if err := renterFee.Validate(); err != nil {
		return errorsmod.Wrapf(ErrInvalidFee, "renter: %s", err)
	}
	if err := renteeFee.Validate(); err != nil {
		return errorsmod.Wrapf(ErrInvalidFee, "rentee: %s", err)
	}

	if duration.IsSubscription() {
		if rentFee.Kind != FeeTokens {
			return ErrNFTFeeOnSubscription
		}
		if renterFee.Kind == FeeFlexibleTokens || renteeFee.Kind == FeeFlexibleTokens {
			return ErrFlexibleFeeOnSubscription
		}
	}

	if (rentFee.Kind == FeeNFT && rentFee.NFTID == nftID) ||
		(renterFee.Kind == FeeNFT && renterFee.NFTID == nftID) ||
		(renteeFee.Kind == FeeNFT && renteeFee.NFTID == nftID) {
		return ErrCannotUseRentedNFTAsFee
	}

	if rentFee.Kind == FeeNFT && renteeFee.Kind == FeeNFT && rentFee.NFTID == renteeFee.NFTID {
		return errorsmod.Wrap(ErrInvalidFee, "rent fee and rentee cancellation fee use the same nft")
	}

	return nil
}

// Validate performs basic validation of a contract.
func (c RentContract) Validate(nftID uint32) error {
	if _, err := sdk.AccAddressFromBech32(c.Renter); err != nil {
		return fmt.Errorf("invalid renter %q: %w", c.Renter, err)
	}

	if err := ValidateTerms(nftID, c.Duration, c.AcceptanceType, c.RentFee, c.RenterCancellationFee, c.RenteeCancellationFee); err != nil {
		return err
	}

	if c.HasStarted() {
		if _, err := sdk.AccAddressFromBech32(c.Rentee); err != nil {
			return fmt.Errorf("invalid rentee %q: %w", c.Rentee, err)
		}
		if *c.StartBlock < c.CreationBlock {
			return fmt.Errorf("contract starts at %d before its creation at %d", *c.StartBlock, c.CreationBlock)
		}
	} else if c.Rentee != "" {
		return fmt.Errorf("contract has a rentee but no start block")
	}

	return nil
}

// ToRaw returns the genesis form of the contract of nftID.
func (c RentContract) ToRaw(nftID uint32) RawRentContract {
	c = c.Clone()

	return RawRentContract{
		NFTID:                 nftID,
		CreationBlock:         c.CreationBlock,
		StartBlock:            c.StartBlock,
		Renter:                c.Renter,
		Rentee:                c.Rentee,
		Duration:              c.Duration,
		AcceptanceType:        c.AcceptanceType,
		RenterCanRevoke:       c.RenterCanRevoke,
		RentFee:               c.RentFee,
		RenterCancellationFee: c.RenterCancellationFee,
		RenteeCancellationFee: c.RenteeCancellationFee,
		TermsAccepted:         c.TermsAccepted,
	}
}

// ContractFromRaw rebuilds a contract from its genesis form.
func ContractFromRaw(raw RawRentContract) (uint32, RentContract, error) {
	c := RentContract{
		CreationBlock:         raw.CreationBlock,
		StartBlock:            raw.StartBlock,
		Renter:                raw.Renter,
		Rentee:                raw.Rentee,
		Duration:              raw.Duration,
		AcceptanceType:        raw.AcceptanceType,
		RenterCanRevoke:       raw.RenterCanRevoke,
		RentFee:               raw.RentFee,
		RenterCancellationFee: raw.RenterCancellationFee,
		RenteeCancellationFee: raw.RenteeCancellationFee,
		TermsAccepted:         raw.TermsAccepted,
	}.Clone()

	if err := c.Validate(raw.NFTID); err != nil {
		return 0, RentContract{}, fmt.Errorf("contract %d: %w", raw.NFTID, err)
	}

	return raw.NFTID, c, nil
}
