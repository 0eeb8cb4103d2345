package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// rent message types
const (
	TypeMsgUpdateParams            = ModuleName + "/MsgUpdateParams"
	TypeMsgCreateContract          = ModuleName + "/MsgCreateContract"
	TypeMsgCancelContract          = ModuleName + "/MsgCancelContract"
	TypeMsgRent                    = ModuleName + "/MsgRent"
	TypeMsgAcceptRentOffer         = ModuleName + "/MsgAcceptRentOffer"
	TypeMsgRetractRentOffer        = ModuleName + "/MsgRetractRentOffer"
	TypeMsgRevokeContract          = ModuleName + "/MsgRevokeContract"
	TypeMsgChangeSubscriptionTerms = ModuleName + "/MsgChangeSubscriptionTerms"
	TypeMsgAcceptSubscriptionTerms = ModuleName + "/MsgAcceptSubscriptionTerms"
)

var (
	_ timedtypes.Msg = &MsgUpdateParams{}
	_ timedtypes.Msg = &MsgCreateContract{}
	_ timedtypes.Msg = &MsgCancelContract{}
	_ timedtypes.Msg = &MsgRent{}
	_ timedtypes.Msg = &MsgAcceptRentOffer{}
	_ timedtypes.Msg = &MsgRetractRentOffer{}
	_ timedtypes.Msg = &MsgRevokeContract{}
	_ timedtypes.Msg = &MsgChangeSubscriptionTerms{}
	_ timedtypes.Msg = &MsgAcceptSubscriptionTerms{}
)

type (
	// MsgUpdateParams replaces the module parameters. Only the authority may
	// send it.
	MsgUpdateParams struct {
		Authority string `json:"authority"`
		Params    Params `json:"params"`
	}

	// MsgCreateContract offers an NFT for rent.
	MsgCreateContract struct {
		Renter                string          `json:"renter"`
		NFTID                 uint32          `json:"nft_id"`
		Duration              Duration        `json:"duration"`
		AcceptanceType        AcceptanceType  `json:"acceptance_type"`
		RenterCanRevoke       bool            `json:"renter_can_revoke"`
		RentFee               RentFee         `json:"rent_fee"`
		RenterCancellationFee CancellationFee `json:"renter_cancellation_fee"`
		RenteeCancellationFee CancellationFee `json:"rentee_cancellation_fee"`
	}

	// MsgCancelContract withdraws a contract nobody has rented yet.
	MsgCancelContract struct {
		Renter string `json:"renter"`
		NFTID  uint32 `json:"nft_id"`
	}

	// MsgRent starts an automatic acceptance contract or makes an offer on a
	// manual acceptance one.
	MsgRent struct {
		Rentee string `json:"rentee"`
		NFTID  uint32 `json:"nft_id"`
	}

	// MsgAcceptRentOffer starts the contract with the offer of Rentee.
	MsgAcceptRentOffer struct {
		Renter string `json:"renter"`
		NFTID  uint32 `json:"nft_id"`
		Rentee string `json:"rentee"`
	}

	// MsgRetractRentOffer withdraws the offer of Rentee.
	MsgRetractRentOffer struct {
		Rentee string `json:"rentee"`
		NFTID  uint32 `json:"nft_id"`
	}

	// MsgRevokeContract ends a running contract early.
	MsgRevokeContract struct {
		Revoker string `json:"revoker"`
		NFTID   uint32 `json:"nft_id"`
	}

	// MsgChangeSubscriptionTerms proposes new subscription terms. The
	// contract ends at its next renewal unless the rentee accepts them.
	MsgChangeSubscriptionTerms struct {
		Renter      string   `json:"renter"`
		NFTID       uint32   `json:"nft_id"`
		Period      uint64   `json:"period"`
		MaxDuration uint64   `json:"max_duration"`
		RentFee     math.Int `json:"rent_fee"`
		Changeable  bool     `json:"changeable"`
	}

	// MsgAcceptSubscriptionTerms accepts the current terms. The rentee
	// restates them so a concurrent change cannot be accepted blindly.
	MsgAcceptSubscriptionTerms struct {
		Rentee      string   `json:"rentee"`
		NFTID       uint32   `json:"nft_id"`
		Period      uint64   `json:"period"`
		MaxDuration uint64   `json:"max_duration"`
		RentFee     math.Int `json:"rent_fee"`
	}

	MsgUpdateParamsResponse            struct{}
	MsgCreateContractResponse          struct{}
	MsgCancelContractResponse          struct{}
	MsgAcceptRentOfferResponse         struct{}
	MsgRetractRentOfferResponse        struct{}
	MsgRevokeContractResponse          struct{}
	MsgChangeSubscriptionTermsResponse struct{}
	MsgAcceptSubscriptionTermsResponse struct{}
	MsgRentResponse                    struct {
		// Started is false when an offer was recorded instead.
		Started bool `json:"started"`
	}
)

func validateAddress(addr, field string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid %s address %q: %s", field, addr, err)
	}

	return nil
}

// Type implements types.Msg.
func (m MsgUpdateParams) Type() string { return TypeMsgUpdateParams }

// GetSigner returns the expected signer for a MsgUpdateParams message.
func (m MsgUpdateParams) GetSigner() string { return m.Authority }

// ValidateBasic does a sanity check on the provided data.
func (m MsgUpdateParams) ValidateBasic() error {
	if err := validateAddress(m.Authority, "authority"); err != nil {
		return err
	}

	return m.Params.Validate()
}

// Type implements types.Msg.
func (m MsgCreateContract) Type() string { return TypeMsgCreateContract }

// GetSigner returns the expected signer for a MsgCreateContract message.
func (m MsgCreateContract) GetSigner() string { return m.Renter }

// ValidateBasic does a sanity check on the provided data.
func (m MsgCreateContract) ValidateBasic() error {
	if err := validateAddress(m.Renter, "renter"); err != nil {
		return err
	}

	return ValidateTerms(m.NFTID, m.Duration, m.AcceptanceType, m.RentFee, m.RenterCancellationFee, m.RenteeCancellationFee)
}

// Type implements types.Msg.
func (m MsgCancelContract) Type() string { return TypeMsgCancelContract }

// GetSigner returns the expected signer for a MsgCancelContract message.
func (m MsgCancelContract) GetSigner() string { return m.Renter }

// ValidateBasic does a sanity check on the provided data.
func (m MsgCancelContract) ValidateBasic() error {
	return validateAddress(m.Renter, "renter")
}

// Type implements types.Msg.
func (m MsgRent) Type() string { return TypeMsgRent }

// GetSigner returns the expected signer for a MsgRent message.
func (m MsgRent) GetSigner() string { return m.Rentee }

// ValidateBasic does a sanity check on the provided data.
func (m MsgRent) ValidateBasic() error {
	return validateAddress(m.Rentee, "rentee")
}

// Type implements types.Msg.
func (m MsgAcceptRentOffer) Type() string { return TypeMsgAcceptRentOffer }

// GetSigner returns the expected signer for a MsgAcceptRentOffer message.
func (m MsgAcceptRentOffer) GetSigner() string { return m.Renter }

// ValidateBasic does a sanity check on the provided data.
func (m MsgAcceptRentOffer) ValidateBasic() error {
	if err := validateAddress(m.Renter, "renter"); err != nil {
		return err
	}

	return validateAddress(m.Rentee, "rentee")
}

// Type implements types.Msg.
func (m MsgRetractRentOffer) Type() string { return TypeMsgRetractRentOffer }

// GetSigner returns the expected signer for a MsgRetractRentOffer message.
func (m MsgRetractRentOffer) GetSigner() string { return m.Rentee }

// ValidateBasic does a sanity check on the provided data.
func (m MsgRetractRentOffer) ValidateBasic() error {
	return validateAddress(m.Rentee, "rentee")
}

// Type implements types.Msg.
func (m MsgRevokeContract) Type() string { return TypeMsgRevokeContract }

// GetSigner returns the expected signer for a MsgRevokeContract message.
func (m MsgRevokeContract) GetSigner() string { return m.Revoker }

// ValidateBasic does a sanity check on the provided data.
func (m MsgRevokeContract) ValidateBasic() error {
	return validateAddress(m.Revoker, "revoker")
}

// Type implements types.Msg.
func (m MsgChangeSubscriptionTerms) Type() string { return TypeMsgChangeSubscriptionTerms }

// GetSigner returns the expected signer for a MsgChangeSubscriptionTerms message.
func (m MsgChangeSubscriptionTerms) GetSigner() string { return m.Renter }

// Duration returns the proposed subscription schedule.
func (m MsgChangeSubscriptionTerms) Duration() Duration {
	return SubscriptionDuration(m.Period, m.MaxDuration, m.Changeable)
}

// ValidateBasic does a sanity check on the provided data.
func (m MsgChangeSubscriptionTerms) ValidateBasic() error {
	if err := validateAddress(m.Renter, "renter"); err != nil {
		return err
	}
	if err := m.Duration().Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidDuration, err.Error())
	}
	if !timedtypes.IsPositive(m.RentFee) {
		return errorsmod.Wrap(ErrInvalidFee, "rent fee must be positive")
	}

	return nil
}

// Type implements types.Msg.
func (m MsgAcceptSubscriptionTerms) Type() string { return TypeMsgAcceptSubscriptionTerms }

// GetSigner returns the expected signer for a MsgAcceptSubscriptionTerms message.
func (m MsgAcceptSubscriptionTerms) GetSigner() string { return m.Rentee }

// ValidateBasic does a sanity check on the provided data.
func (m MsgAcceptSubscriptionTerms) ValidateBasic() error {
	if err := validateAddress(m.Rentee, "rentee"); err != nil {
		return err
	}
	if m.Period == 0 {
		return errorsmod.Wrap(ErrInvalidDuration, "period must be positive")
	}
	if !timedtypes.IsPositive(m.RentFee) {
		return errorsmod.Wrap(ErrInvalidFee, "rent fee must be positive")
	}

	return nil
}
