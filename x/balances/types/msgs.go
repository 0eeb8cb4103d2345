package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// TypeMsgTransfer is the message type of MsgTransfer.
const TypeMsgTransfer = ModuleName + "/MsgTransfer"

var _ timedtypes.Msg = &MsgTransfer{}

// MsgTransfer moves tokens between two accounts.
type MsgTransfer struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Amount math.Int `json:"amount"`
	// KeepAlive refuses transfers that would reap the sender.
	KeepAlive bool `json:"keep_alive"`
}

type MsgTransferResponse struct{}

// Requirement returns the existence requirement of the transfer.
func (m MsgTransfer) Requirement() ExistenceRequirement {
	if m.KeepAlive {
		return KeepAlive
	}

	return AllowDeath
}

// Type implements types.Msg.
func (m MsgTransfer) Type() string { return TypeMsgTransfer }

// GetSigner returns the expected signer for a MsgTransfer message.
func (m MsgTransfer) GetSigner() string { return m.From }

// ValidateBasic does a sanity check on the provided data.
func (m MsgTransfer) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.From); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid from address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(m.To); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid to address: %s", err)
	}
	if m.Amount.IsNil() || !m.Amount.IsPositive() {
		return errorsmod.Wrapf(ErrInvalidAmount, "amount must be positive: %s", m.Amount)
	}

	return nil
}
