package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// TypeMsgCreateMarketplace is the message type of MsgCreateMarketplace.
const TypeMsgCreateMarketplace = ModuleName + "/MsgCreateMarketplace"

var _ timedtypes.Msg = &MsgCreateMarketplace{}

// MsgCreateMarketplace registers a marketplace owned by Owner.
type MsgCreateMarketplace struct {
	Owner         string             `json:"owner"`
	CommissionFee timedtypes.Permill `json:"commission_fee"`
}

type MsgCreateMarketplaceResponse struct {
	ID uint32 `json:"id"`
}

// Type implements types.Msg.
func (m MsgCreateMarketplace) Type() string { return TypeMsgCreateMarketplace }

// GetSigner returns the expected signer for a MsgCreateMarketplace message.
func (m MsgCreateMarketplace) GetSigner() string { return m.Owner }

// ValidateBasic does a sanity check on the provided data.
func (m MsgCreateMarketplace) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid owner address: %s", err)
	}
	if err := m.CommissionFee.Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidCommission, err.Error())
	}

	return nil
}
