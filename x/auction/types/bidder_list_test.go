package types_test

import (
	"encoding/json"
	"math/rand"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/tempo-labs/timed-contracts/testutils"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
)

func account(i int) string {
	return string(rune('a' + i))
}

func TestBidderListEviction(t *testing.T) {
	list := types.NewBidderList(3)

	var evicted []types.Bid
	for i := 1; i <= 10; i++ {
		b, ok := list.InsertNewBid(account(i), math.NewInt(int64(i+1)))
		if i <= 3 {
			require.False(t, ok)
			continue
		}

		require.True(t, ok)
		evicted = append(evicted, b)
	}

	require.Equal(t, 3, list.Len())
	require.Equal(t, []types.Bid{
		{Bidder: account(8), Amount: math.NewInt(9)},
		{Bidder: account(9), Amount: math.NewInt(10)},
		{Bidder: account(10), Amount: math.NewInt(11)},
	}, list.Bids())

	require.Len(t, evicted, 7)
	for i, b := range evicted {
		require.Equal(t, account(i+1), b.Bidder)
		require.Equal(t, math.NewInt(int64(i+2)), b.Amount)
	}
}

func TestBidderListAccessors(t *testing.T) {
	list := types.NewBidderList(5)

	_, ok := list.HighestBid()
	require.False(t, ok)
	_, ok = list.LowestBid()
	require.False(t, ok)
	_, ok = list.RemoveHighestBid()
	require.False(t, ok)
	_, ok = list.RemoveLowestBid()
	require.False(t, ok)

	list.InsertNewBid("alice", math.NewInt(10))
	list.InsertNewBid("bob", math.NewInt(20))
	list.InsertNewBid("carol", math.NewInt(30))

	high, ok := list.HighestBid()
	require.True(t, ok)
	require.Equal(t, "carol", high.Bidder)

	low, ok := list.LowestBid()
	require.True(t, ok)
	require.Equal(t, "alice", low.Bidder)

	found, ok := list.FindBid("bob")
	require.True(t, ok)
	require.Equal(t, math.NewInt(20), found.Amount)

	_, ok = list.FindBid("dave")
	require.False(t, ok)

	removed, ok := list.RemoveBid("bob")
	require.True(t, ok)
	require.Equal(t, "bob", removed.Bidder)
	require.Equal(t, 2, list.Len())

	_, ok = list.RemoveBid("bob")
	require.False(t, ok)

	high, ok = list.RemoveHighestBid()
	require.True(t, ok)
	require.Equal(t, "carol", high.Bidder)

	low, ok = list.RemoveLowestBid()
	require.True(t, ok)
	require.Equal(t, "alice", low.Bidder)
	require.Zero(t, list.Len())
}

func TestBidderListJSON(t *testing.T) {
	list := types.NewBidderList(4)
	list.InsertNewBid("alice", math.NewInt(10))
	list.InsertNewBid("bob", math.NewInt(20))

	bz, err := json.Marshal(list)
	require.NoError(t, err)

	var decoded types.BidderList
	require.NoError(t, json.Unmarshal(bz, &decoded))
	require.Equal(t, list.Bids(), decoded.Bids())
	require.Equal(t, 4, decoded.Limit())

	require.Error(t, json.Unmarshal([]byte(`{"bids":[{"bidder":"a","amount":"1"},{"bidder":"b","amount":"2"}],"limit":1}`), &decoded))
}

func TestBidderListRandomBids(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	bidders := testutils.RandomAddresses(r, 20)

	list := types.NewBidderList(5)
	highest := math.ZeroInt()

	for i := 0; i < 200; i++ {
		bidder := bidders[r.Intn(len(bidders))]
		highest = highest.AddRaw(1 + r.Int63n(100))

		// a bidder outbidding itself replaces its previous bid
		list.RemoveBid(bidder)

		evicted, ok := list.InsertNewBid(bidder, highest)
		if ok {
			lowest, _ := list.LowestBid()
			require.True(t, evicted.Amount.LTE(lowest.Amount))
		}

		require.NoError(t, list.Validate())
		require.LessOrEqual(t, list.Len(), list.Limit())

		top, found := list.HighestBid()
		require.True(t, found)
		require.Equal(t, bidder, top.Bidder)
		require.True(t, top.Amount.Equal(highest))
	}
}
