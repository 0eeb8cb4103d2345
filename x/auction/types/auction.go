package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type (
	// AuctionData is a live auction of a single NFT.
	AuctionData struct {
		Creator       string
		StartBlock    uint64
		EndBlock      uint64
		StartPrice    math.Int
		BuyItPrice    *math.Int
		Bidders       BidderList
		MarketplaceID uint32
		IsExtended    bool
	}

	// RawAuction is the flat genesis form of an auction.
	RawAuction struct {
		NFTID         uint32    `json:"nft_id"`
		Creator       string    `json:"creator"`
		StartBlock    uint64    `json:"start_block"`
		EndBlock      uint64    `json:"end_block"`
		StartPrice    math.Int  `json:"start_price"`
		BuyItPrice    *math.Int `json:"buy_it_price,omitempty"`
		Bids          []Bid     `json:"bids"`
		BidderLimit   int       `json:"bidder_limit"`
		MarketplaceID uint32    `json:"marketplace_id"`
		IsExtended    bool      `json:"is_extended"`
	}
)

// HasStarted reports whether bids are accepted at block now.
func (a AuctionData) HasStarted(now uint64) bool {
	return now >= a.StartBlock
}

// InEndingPeriod reports whether now falls in the last endingPeriod blocks.
func (a AuctionData) InEndingPeriod(now, endingPeriod uint64) bool {
	if now >= a.EndBlock {
		return true
	}

	return a.EndBlock-now <= endingPeriod
}

// Validate performs basic validation of an auction.
func (a AuctionData) Validate() error {
	if _, err := sdk.AccAddressFromBech32(a.Creator); err != nil {
		return fmt.Errorf("invalid auction creator %q: %w", a.Creator, err)
	}
	if a.EndBlock <= a.StartBlock {
		return fmt.Errorf("auction end block %d must be after its start block %d", a.EndBlock, a.StartBlock)
	}
	if a.StartPrice.IsNil() || a.StartPrice.IsNegative() {
		return fmt.Errorf("invalid start price %s", a.StartPrice)
	}
	if a.BuyItPrice != nil && (a.BuyItPrice.IsNil() || a.BuyItPrice.LTE(a.StartPrice)) {
		return fmt.Errorf("buy it price must be above the start price")
	}

	return a.Bidders.Validate()
}

// ToRaw returns the genesis form of the auction of nftID.
func (a AuctionData) ToRaw(nftID uint32) RawAuction {
	return RawAuction{
		NFTID:         nftID,
		Creator:       a.Creator,
		StartBlock:    a.StartBlock,
		EndBlock:      a.EndBlock,
		StartPrice:    a.StartPrice,
		BuyItPrice:    a.BuyItPrice,
		Bids:          a.Bidders.Bids(),
		BidderLimit:   a.Bidders.Limit(),
		MarketplaceID: a.MarketplaceID,
		IsExtended:    a.IsExtended,
	}
}

// AuctionFromRaw rebuilds an auction from its genesis form.
func AuctionFromRaw(raw RawAuction) (uint32, AuctionData, error) {
	if len(raw.Bids) > raw.BidderLimit {
		return 0, AuctionData{}, fmt.Errorf("auction %d holds %d bids, limit is %d", raw.NFTID, len(raw.Bids), raw.BidderLimit)
	}

	bidders := NewBidderList(raw.BidderLimit)
	for _, b := range raw.Bids {
		bidders.InsertNewBid(b.Bidder, b.Amount)
	}

	a := AuctionData{
		Creator:       raw.Creator,
		StartBlock:    raw.StartBlock,
		EndBlock:      raw.EndBlock,
		StartPrice:    raw.StartPrice,
		BuyItPrice:    raw.BuyItPrice,
		Bidders:       bidders,
		MarketplaceID: raw.MarketplaceID,
		IsExtended:    raw.IsExtended,
	}
	if err := a.Validate(); err != nil {
		return 0, AuctionData{}, fmt.Errorf("auction %d: %w", raw.NFTID, err)
	}

	return raw.NFTID, a, nil
}
