package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// transmission message types
const (
	TypeMsgUpdateParams               = ModuleName + "/MsgUpdateParams"
	TypeMsgSetTransmissionProtocol    = ModuleName + "/MsgSetTransmissionProtocol"
	TypeMsgRemoveTransmissionProtocol = ModuleName + "/MsgRemoveTransmissionProtocol"
	TypeMsgResetTimer                 = ModuleName + "/MsgResetTimer"
	TypeMsgAddConsent                 = ModuleName + "/MsgAddConsent"
)

var (
	_ timedtypes.Msg = &MsgUpdateParams{}
	_ timedtypes.Msg = &MsgSetTransmissionProtocol{}
	_ timedtypes.Msg = &MsgRemoveTransmissionProtocol{}
	_ timedtypes.Msg = &MsgResetTimer{}
	_ timedtypes.Msg = &MsgAddConsent{}
)

type (
	// MsgUpdateParams replaces the module parameters. Only the authority may
	// send it.
	MsgUpdateParams struct {
		Authority string `json:"authority"`
		Params    Params `json:"params"`
	}

	// MsgSetTransmissionProtocol schedules the transmission of an NFT to
	// Recipient.
	MsgSetTransmissionProtocol struct {
		Owner        string               `json:"owner"`
		NFTID        uint32               `json:"nft_id"`
		Recipient    string               `json:"recipient"`
		Protocol     TransmissionProtocol `json:"protocol"`
		Cancellation CancellationPeriod   `json:"cancellation"`
	}

	// MsgRemoveTransmissionProtocol cancels a transmission.
	MsgRemoveTransmissionProtocol struct {
		Owner string `json:"owner"`
		NFTID uint32 `json:"nft_id"`
	}

	// MsgResetTimer moves the block of an at_block_with_reset protocol.
	MsgResetTimer struct {
		Owner string `json:"owner"`
		NFTID uint32 `json:"nft_id"`
		Block uint64 `json:"block"`
	}

	// MsgAddConsent records the consent of Account.
	MsgAddConsent struct {
		Account string `json:"account"`
		NFTID   uint32 `json:"nft_id"`
	}

	MsgUpdateParamsResponse               struct{}
	MsgSetTransmissionProtocolResponse    struct{}
	MsgRemoveTransmissionProtocolResponse struct{}
	MsgResetTimerResponse                 struct{}
	MsgAddConsentResponse                 struct {
		// Transmitted is true when this consent completed an on_consent protocol.
		Transmitted bool `json:"transmitted"`
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
func (m MsgSetTransmissionProtocol) Type() string { return TypeMsgSetTransmissionProtocol }

// GetSigner returns the expected signer for a MsgSetTransmissionProtocol message.
func (m MsgSetTransmissionProtocol) GetSigner() string { return m.Owner }

// ValidateBasic does a sanity check on the provided data. The consent list
// size is bounded by the keeper against the current params.
func (m MsgSetTransmissionProtocol) ValidateBasic() error {
	if err := validateAddress(m.Owner, "owner"); err != nil {
		return err
	}
	if err := validateAddress(m.Recipient, "recipient"); err != nil {
		return err
	}
	if m.Owner == m.Recipient {
		return ErrInvalidRecipient
	}

	if err := m.Protocol.Validate(0); err != nil {
		return err
	}

	return m.Cancellation.Validate(m.Protocol)
}

// Type implements types.Msg.
func (m MsgRemoveTransmissionProtocol) Type() string { return TypeMsgRemoveTransmissionProtocol }

// GetSigner returns the expected signer for a MsgRemoveTransmissionProtocol message.
func (m MsgRemoveTransmissionProtocol) GetSigner() string { return m.Owner }

// ValidateBasic does a sanity check on the provided data.
func (m MsgRemoveTransmissionProtocol) ValidateBasic() error {
	return validateAddress(m.Owner, "owner")
}

// Type implements types.Msg.
func (m MsgResetTimer) Type() string { return TypeMsgResetTimer }

// GetSigner returns the expected signer for a MsgResetTimer message.
func (m MsgResetTimer) GetSigner() string { return m.Owner }

// ValidateBasic does a sanity check on the provided data.
func (m MsgResetTimer) ValidateBasic() error {
	if err := validateAddress(m.Owner, "owner"); err != nil {
		return err
	}
	if m.Block == 0 {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "block must be positive")
	}

	return nil
}

// Type implements types.Msg.
func (m MsgAddConsent) Type() string { return TypeMsgAddConsent }

// GetSigner returns the expected signer for a MsgAddConsent message.
func (m MsgAddConsent) GetSigner() string { return m.Account }

// ValidateBasic does a sanity check on the provided data.
func (m MsgAddConsent) ValidateBasic() error {
	return validateAddress(m.Account, "account")
}
