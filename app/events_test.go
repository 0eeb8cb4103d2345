package app_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/tempo-labs/timed-contracts/app"
)

func TestFromSDKEventsKeepsEveryEvent(t *testing.T) {
	events := app.FromSDKEvents(sdk.Events{
		sdk.NewEvent("transfer", sdk.NewAttribute("amount", "1")),
		sdk.NewEvent("transfer", sdk.NewAttribute("amount", "2")),
	})

	require.Equal(t, []app.Event{
		{Type: "transfer", Attributes: []app.Attribute{{Key: "amount", Value: "1"}}},
		{Type: "transfer", Attributes: []app.Attribute{{Key: "amount", Value: "2"}}},
	}, events)

	v, ok := events[1].Attribute("amount")
	require.True(t, ok)
	require.Equal(t, "2", v)

	_, ok = events[1].Attribute("from")
	require.False(t, ok)
}

func TestEventLogEviction(t *testing.T) {
	l := app.NewEventLog(2)

	l.Append(1, []app.Event{{Type: "a"}})
	l.Append(1, []app.Event{{Type: "b"}})
	l.Append(2, nil)

	events, ok := l.Get(1)
	require.True(t, ok)
	require.Len(t, events, 2)

	events, ok = l.Get(2)
	require.True(t, ok)
	require.Empty(t, events)

	l.Append(3, []app.Event{{Type: "c"}})
	_, ok = l.Get(1)
	require.False(t, ok)
	require.Equal(t, []uint64{2, 3}, l.Heights())

	// callers cannot alter the log through returned slices
	events, _ = l.Get(3)
	events[0].Type = "changed"
	events, _ = l.Get(3)
	require.Equal(t, "c", events[0].Type)
}

// A restore can rewind the engine, so heights may arrive out of order.
func TestEventLogOrdersByHeight(t *testing.T) {
	l := app.NewEventLog(2)

	l.Append(5, []app.Event{{Type: "e"}})
	l.Append(3, []app.Event{{Type: "c"}})
	require.Equal(t, []uint64{3, 5}, l.Heights())

	l.Append(4, []app.Event{{Type: "d"}})
	require.Equal(t, []uint64{4, 5}, l.Heights())
}
