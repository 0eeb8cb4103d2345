package types

import (
	"fmt"
)

var (
	DefaultMinAuctionDuration   uint64 = 100
	DefaultMaxAuctionDuration   uint64 = 2_592_000
	DefaultMaxAuctionDelay      uint64 = 432_000
	DefaultAuctionGracePeriod   uint64 = 50
	DefaultAuctionEndingPeriod  uint64 = 100
	DefaultBidderListLimit      uint32 = 25
	DefaultParallelAuctionLimit uint32 = 1_000_000
	DefaultActionsInBlockLimit  uint32 = 1_000
)

// Params defines the auction module parameters. Durations are in blocks.
type Params struct {
	// MinAuctionDuration is the shortest allowed end - start.
	MinAuctionDuration uint64 `json:"min_auction_duration"`
	// MaxAuctionDuration is the longest allowed end - start.
	MaxAuctionDuration uint64 `json:"max_auction_duration"`
	// MaxAuctionDelay bounds how far in the future an auction may start.
	MaxAuctionDelay uint64 `json:"max_auction_delay"`
	// AuctionGracePeriod is how long an auction is extended by a late bid.
	AuctionGracePeriod uint64 `json:"auction_grace_period"`
	// AuctionEndingPeriod is the window before the end in which bids extend
	// the auction and cannot be removed.
	AuctionEndingPeriod uint64 `json:"auction_ending_period"`
	// BidderListLimit is the number of bids kept per auction.
	BidderListLimit uint32 `json:"bidder_list_limit"`
	// ParallelAuctionLimit is the capacity of the deadline queue.
	ParallelAuctionLimit uint32 `json:"parallel_auction_limit"`
	// ActionsInBlockLimit caps resolutions per block, zero meaning no cap.
	ActionsInBlockLimit uint32 `json:"actions_in_block_limit"`
}

// NewParams returns a new Params instance with the provided values.
func NewParams(
	minAuctionDuration, maxAuctionDuration, maxAuctionDelay, gracePeriod, endingPeriod uint64,
	bidderListLimit, parallelAuctionLimit, actionsInBlockLimit uint32,
) Params {
	return Params{
		MinAuctionDuration:   minAuctionDuration,
		MaxAuctionDuration:   maxAuctionDuration,
		MaxAuctionDelay:      maxAuctionDelay,
		AuctionGracePeriod:   gracePeriod,
		AuctionEndingPeriod:  endingPeriod,
		BidderListLimit:      bidderListLimit,
		ParallelAuctionLimit: parallelAuctionLimit,
		ActionsInBlockLimit:  actionsInBlockLimit,
	}
}

// DefaultParams returns the default x/auction parameters.
func DefaultParams() Params {
	return NewParams(
		DefaultMinAuctionDuration,
		DefaultMaxAuctionDuration,
		DefaultMaxAuctionDelay,
		DefaultAuctionGracePeriod,
		DefaultAuctionEndingPeriod,
		DefaultBidderListLimit,
		DefaultParallelAuctionLimit,
		DefaultActionsInBlockLimit,
	)
}

// Validate performs basic validation on the parameters.
func (p Params) Validate() error {
	if p.MinAuctionDuration == 0 {
		return fmt.Errorf("min auction duration must be positive")
	}

	if p.MaxAuctionDuration < p.MinAuctionDuration {
		return fmt.Errorf("max auction duration (%d) is lower than the min auction duration (%d)", p.MaxAuctionDuration, p.MinAuctionDuration)
	}

	if p.AuctionGracePeriod == 0 {
		return fmt.Errorf("auction grace period must be positive")
	}

	if p.BidderListLimit == 0 {
		return fmt.Errorf("bidder list limit must be positive")
	}

	if p.ParallelAuctionLimit == 0 {
		return fmt.Errorf("parallel auction limit must be positive")
	}

	return nil
}
