package types

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type (
	// Bid is a single offer placed on an auction.
	Bid struct {
		Bidder string   `json:"bidder"`
		Amount math.Int `json:"amount"`
	}

	// BidderList keeps the bids of an auction sorted by ascending amount and
	// holds at most limit of them.
	//
	// The list does not sort on insert. Callers only insert bids above the
	// current highest bid, which keeps it ordered. Lookups by bidder are linear
	// because the sort key is the amount.
	BidderList struct {
		bids  []Bid
		limit int
	}

	bidderListJSON struct {
		Bids  []Bid `json:"bids"`
		Limit int   `json:"limit"`
	}
)

// NewBidderList returns an empty list that holds at most limit bids.
func NewBidderList(limit int) BidderList {
	if limit < 1 {
		limit = 1
	}

	return BidderList{
		bids:  make([]Bid, 0, limit),
		limit: limit,
	}
}

// InsertNewBid appends the bid. When the list is full the lowest bid is
// evicted to make room and returned.
func (l *BidderList) InsertNewBid(bidder string, amount math.Int) (Bid, bool) {
	var (
		evicted Bid
		dropped bool
	)

	if len(l.bids) >= l.limit {
		evicted, dropped = l.RemoveLowestBid()
	}

	l.bids = append(l.bids, Bid{Bidder: bidder, Amount: amount})

	return evicted, dropped
}

// HighestBid returns the last bid.
func (l BidderList) HighestBid() (Bid, bool) {
	if len(l.bids) == 0 {
		return Bid{}, false
	}

	return l.bids[len(l.bids)-1], true
}

// LowestBid returns the first bid.
func (l BidderList) LowestBid() (Bid, bool) {
	if len(l.bids) == 0 {
		return Bid{}, false
	}

	return l.bids[0], true
}

// RemoveBid removes the bid placed by bidder.
func (l *BidderList) RemoveBid(bidder string) (Bid, bool) {
	for i, b := range l.bids {
		if b.Bidder == bidder {
			l.bids = append(l.bids[:i], l.bids[i+1:]...)
			return b, true
		}
	}

	return Bid{}, false
}

// RemoveHighestBid removes and returns the last bid.
func (l *BidderList) RemoveHighestBid() (Bid, bool) {
	b, ok := l.HighestBid()
	if ok {
		l.bids = l.bids[:len(l.bids)-1]
	}

	return b, ok
}

// RemoveLowestBid removes and returns the first bid.
func (l *BidderList) RemoveLowestBid() (Bid, bool) {
	b, ok := l.LowestBid()
	if ok {
		l.bids = append(l.bids[:0], l.bids[1:]...)
	}

	return b, ok
}

// FindBid returns the bid placed by bidder.
func (l BidderList) FindBid(bidder string) (Bid, bool) {
	for _, b := range l.bids {
		if b.Bidder == bidder {
			return b, true
		}
	}

	return Bid{}, false
}

// Len returns the number of bids.
func (l BidderList) Len() int {
	return len(l.bids)
}

// Limit returns the maximum number of bids.
func (l BidderList) Limit() int {
	return l.limit
}

// Bids returns a copy of the bids in ascending order.
func (l BidderList) Bids() []Bid {
	out := make([]Bid, len(l.bids))
	copy(out, l.bids)

	return out
}

// Validate checks the list bounds, ordering and bidder addresses.
func (l BidderList) Validate() error {
	if len(l.bids) > l.limit {
		return fmt.Errorf("bidder list holds %d bids, limit is %d", len(l.bids), l.limit)
	}

	seen := make(map[string]struct{}, len(l.bids))
	for i, b := range l.bids {
		if _, err := sdk.AccAddressFromBech32(b.Bidder); err != nil {
			return fmt.Errorf("invalid bidder %q: %w", b.Bidder, err)
		}
		if b.Amount.IsNil() || !b.Amount.IsPositive() {
			return fmt.Errorf("bid of %s must be positive", b.Bidder)
		}
		if i > 0 && l.bids[i-1].Amount.GT(b.Amount) {
			return fmt.Errorf("bids are not in ascending order at index %d", i)
		}
		if _, ok := seen[b.Bidder]; ok {
			return fmt.Errorf("duplicate bid from %s", b.Bidder)
		}
		seen[b.Bidder] = struct{}{}
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (l BidderList) MarshalJSON() ([]byte, error) {
	bids := l.bids
	if bids == nil {
		bids = []Bid{}
	}

	return json.Marshal(bidderListJSON{Bids: bids, Limit: l.limit})
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *BidderList) UnmarshalJSON(bz []byte) error {
	var raw bidderListJSON
	if err := json.Unmarshal(bz, &raw); err != nil {
		return err
	}
	if len(raw.Bids) > raw.Limit {
		return fmt.Errorf("bidder list holds %d bids, limit is %d", len(raw.Bids), raw.Limit)
	}

	*l = NewBidderList(raw.Limit)
	l.bids = append(l.bids, raw.Bids...)

	return nil
}
