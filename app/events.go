package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/huandu/skiplist"
)

type (
	// Attribute is a key value pair of an Event.
	Attribute struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	// Event is the JSON form of a module event.
	Event struct {
		Type       string      `json:"type"`
		Attributes []Attribute `json:"attributes"`
	}

	// EventLog keeps the events of the most recent blocks in memory, ordered
	// by height.
	EventLog struct {
		size   int
		blocks *skiplist.SkipList
	}
)

// FromSDKEvents converts events emitted through an sdk.EventManager.
func FromSDKEvents(events sdk.Events) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		attrs := make([]Attribute, 0, len(e.Attributes))
		for _, a := range e.Attributes {
			attrs = append(attrs, Attribute{Key: a.Key, Value: a.Value})
		}
		out = append(out, Event{Type: e.Type, Attributes: attrs})
	}

	return out
}

// Attribute returns the value of key.
func (e Event) Attribute(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}

	return "", false
}

// NewEventLog returns a log holding the events of up to size blocks.
func NewEventLog(size int) *EventLog {
	return &EventLog{
		size:   size,
		blocks: skiplist.New(skiplist.Uint64),
	}
}

// Append adds events to the block at height. Once more than size blocks are
// held, the lowest ones are dropped.
func (l *EventLog) Append(height uint64, events []Event) {
	if elem := l.blocks.Get(height); elem != nil {
		elem.Value = append(elem.Value.([]Event), events...)
	} else {
		l.blocks.Set(height, append([]Event{}, events...))
	}

	for l.blocks.Len() > l.size {
		l.blocks.RemoveFront()
	}
}

// Get returns the events of the block at height.
func (l *EventLog) Get(height uint64) ([]Event, bool) {
	elem := l.blocks.Get(height)
	if elem == nil {
		return nil, false
	}

	return append([]Event(nil), elem.Value.([]Event)...), true
}

// Heights returns the heights held, oldest first.
func (l *EventLog) Heights() []uint64 {
	heights := make([]uint64, 0, l.blocks.Len())
	for elem := l.blocks.Front(); elem != nil; elem = elem.Next() {
		heights = append(heights, elem.Key().(uint64))
	}

	return heights
}
