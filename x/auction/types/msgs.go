package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// auction message types
const (
	TypeMsgUpdateParams  = ModuleName + "/MsgUpdateParams"
	TypeMsgCreateAuction = ModuleName + "/MsgCreateAuction"
	TypeMsgCancelAuction = ModuleName + "/MsgCancelAuction"
	TypeMsgEndAuction    = ModuleName + "/MsgEndAuction"
	TypeMsgAddBid        = ModuleName + "/MsgAddBid"
	TypeMsgRemoveBid     = ModuleName + "/MsgRemoveBid"
	TypeMsgBuyItNow      = ModuleName + "/MsgBuyItNow"
	TypeMsgClaim         = ModuleName + "/MsgClaim"
)

var (
	_ timedtypes.Msg = &MsgUpdateParams{}
	_ timedtypes.Msg = &MsgCreateAuction{}
	_ timedtypes.Msg = &MsgCancelAuction{}
	_ timedtypes.Msg = &MsgEndAuction{}
	_ timedtypes.Msg = &MsgAddBid{}
	_ timedtypes.Msg = &MsgRemoveBid{}
	_ timedtypes.Msg = &MsgBuyItNow{}
	_ timedtypes.Msg = &MsgClaim{}
)

type (
	// MsgUpdateParams replaces the module parameters. Only the authority may
	// send it.
	MsgUpdateParams struct {
		Authority string `json:"authority"`
		Params    Params `json:"params"`
	}

	// MsgCreateAuction lists an NFT in a new auction.
	MsgCreateAuction struct {
		Creator       string    `json:"creator"`
		NFTID         uint32    `json:"nft_id"`
		MarketplaceID uint32    `json:"marketplace_id"`
		StartBlock    uint64    `json:"start_block"`
		EndBlock      uint64    `json:"end_block"`
		StartPrice    math.Int  `json:"start_price"`
		BuyItPrice    *math.Int `json:"buy_it_price,omitempty"`
	}

	// MsgCancelAuction withdraws an auction that has not started yet.
	MsgCancelAuction struct {
		Creator string `json:"creator"`
		NFTID   uint32 `json:"nft_id"`
	}

	// MsgEndAuction settles an extended auction ahead of its end block.
	MsgEndAuction struct {
		Creator string `json:"creator"`
		NFTID   uint32 `json:"nft_id"`
	}

	// MsgAddBid places a bid.
	MsgAddBid struct {
		Bidder string   `json:"bidder"`
		NFTID  uint32   `json:"nft_id"`
		Amount math.Int `json:"amount"`
	}

	// MsgRemoveBid withdraws the bid of Bidder.
	MsgRemoveBid struct {
		Bidder string `json:"bidder"`
		NFTID  uint32 `json:"nft_id"`
	}

	// MsgBuyItNow buys the NFT at the auction's buy it price.
	MsgBuyItNow struct {
		Buyer string `json:"buyer"`
		NFTID uint32 `json:"nft_id"`
	}

	// MsgClaim pays out every outbid amount owed to Claimer.
	MsgClaim struct {
		Claimer string `json:"claimer"`
	}

	MsgUpdateParamsResponse  struct{}
	MsgCreateAuctionResponse struct{}
	MsgCancelAuctionResponse struct{}
	MsgEndAuctionResponse    struct{}
	MsgAddBidResponse        struct{}
	MsgRemoveBidResponse     struct{}
	MsgBuyItNowResponse      struct{}
	MsgClaimResponse         struct {
		Amount math.Int `json:"amount"`
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
func (m MsgCreateAuction) Type() string { return TypeMsgCreateAuction }

// GetSigner returns the expected signer for a MsgCreateAuction message.
func (m MsgCreateAuction) GetSigner() string { return m.Creator }

// ValidateBasic does a sanity check on the provided data.
func (m MsgCreateAuction) ValidateBasic() error {
	if err := validateAddress(m.Creator, "creator"); err != nil {
		return err
	}

	if m.EndBlock <= m.StartBlock {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "end block %d must be after start block %d", m.EndBlock, m.StartBlock)
	}

	if m.StartPrice.IsNil() || m.StartPrice.IsNegative() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "start price must be non-negative")
	}

	if m.BuyItPrice != nil && (m.BuyItPrice.IsNil() || m.BuyItPrice.LTE(m.StartPrice)) {
		return ErrBuyItPriceTooLow
	}

	return nil
}

// Type implements types.Msg.
func (m MsgCancelAuction) Type() string { return TypeMsgCancelAuction }

// GetSigner returns the expected signer for a MsgCancelAuction message.
func (m MsgCancelAuction) GetSigner() string { return m.Creator }

// ValidateBasic does a sanity check on the provided data.
func (m MsgCancelAuction) ValidateBasic() error {
	return validateAddress(m.Creator, "creator")
}

// Type implements types.Msg.
func (m MsgEndAuction) Type() string { return TypeMsgEndAuction }

// GetSigner returns the expected signer for a MsgEndAuction message.
func (m MsgEndAuction) GetSigner() string { return m.Creator }

// ValidateBasic does a sanity check on the provided data.
func (m MsgEndAuction) ValidateBasic() error {
	return validateAddress(m.Creator, "creator")
}

// Type implements types.Msg.
func (m MsgAddBid) Type() string { return TypeMsgAddBid }

// GetSigner returns the expected signer for a MsgAddBid message.
func (m MsgAddBid) GetSigner() string { return m.Bidder }

// ValidateBasic does a sanity check on the provided data.
func (m MsgAddBid) ValidateBasic() error {
	if err := validateAddress(m.Bidder, "bidder"); err != nil {
		return err
	}

	if !timedtypes.IsPositive(m.Amount) {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "bid amount must be positive")
	}

	return nil
}

// Type implements types.Msg.
func (m MsgRemoveBid) Type() string { return TypeMsgRemoveBid }

// GetSigner returns the expected signer for a MsgRemoveBid message.
func (m MsgRemoveBid) GetSigner() string { return m.Bidder }

// ValidateBasic does a sanity check on the provided data.
func (m MsgRemoveBid) ValidateBasic() error {
	return validateAddress(m.Bidder, "bidder")
}

// Type implements types.Msg.
func (m MsgBuyItNow) Type() string { return TypeMsgBuyItNow }

// GetSigner returns the expected signer for a MsgBuyItNow message.
func (m MsgBuyItNow) GetSigner() string { return m.Buyer }

// ValidateBasic does a sanity check on the provided data.
func (m MsgBuyItNow) ValidateBasic() error {
	return validateAddress(m.Buyer, "buyer")
}

// Type implements types.Msg.
func (m MsgClaim) Type() string { return TypeMsgClaim }

// GetSigner returns the expected signer for a MsgClaim message.
func (m MsgClaim) GetSigner() string { return m.Claimer }

// ValidateBasic does a sanity check on the provided data.
func (m MsgClaim) ValidateBasic() error {
	return validateAddress(m.Claimer, "claimer")
}
