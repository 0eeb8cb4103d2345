package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// TypeMsgCreateNFT is the message type of MsgCreateNFT.
const TypeMsgCreateNFT = ModuleName + "/MsgCreateNFT"

var _ timedtypes.Msg = &MsgCreateNFT{}

// MsgCreateNFT mints an NFT owned by Owner.
type MsgCreateNFT struct {
	Owner    string             `json:"owner"`
	Offchain string             `json:"offchain"`
	Royalty  timedtypes.Permill `json:"royalty"`
}

type MsgCreateNFTResponse struct {
	ID uint32 `json:"id"`
}

// Type implements types.Msg.
func (m MsgCreateNFT) Type() string { return TypeMsgCreateNFT }

// GetSigner returns the expected signer for a MsgCreateNFT message.
func (m MsgCreateNFT) GetSigner() string { return m.Owner }

// ValidateBasic does a sanity check on the provided data.
func (m MsgCreateNFT) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid owner address: %s", err)
	}

	return m.Royalty.Validate()
}
