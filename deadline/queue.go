package deadline

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
)

const codespace = "deadline"

var (
	// ErrCapacityExceeded is returned when inserting into a full queue.
	ErrCapacityExceeded = errorsmod.Register(codespace, 2, "deadline queue capacity exceeded")

	// ErrDuplicateID is returned when the id already has a deadline.
	ErrDuplicateID = errorsmod.Register(codespace, 3, "id already has a deadline")

	// ErrUnsortedEntries is returned when raw entries are not ordered by due
	// block.
	ErrUnsortedEntries = errorsmod.Register(codespace, 4, "deadline entries are not sorted")
)

var (
	// dueKeyPrefix|due|seq -> id
	dueKeyPrefix = []byte{0x00}
	// idKeyPrefix|id -> due|seq
	idKeyPrefix = []byte{0x01}
	seqKey      = []byte{0x02}
	lenKey      = []byte{0x03}
)

type (
	// ID is the type of the values a queue schedules.
	ID interface {
		~uint32 | ~uint64
	}

	// Entry is a single scheduled deadline.
	Entry[I ID] struct {
		ID    I      `json:"id"`
		DueAt uint64 `json:"due_at"`
	}

	// Queue is a bounded list of deadlines sorted by due block, kept in a key
	// value store. Entries are keyed by (due, seq), where seq grows with every
	// insert, so entries sharing the same due block keep their insertion order
	// and draining the queue at a fixed height is deterministic.
	//
	// A Queue holds no state of its own. Every call reads and writes store, so
	// a queue opened on a cached store is rolled back with it.
	Queue[I ID] struct {
		store    storetypes.KVStore
		capacity int
	}
)

// NewQueue opens the queue kept in store. The queue holds at most capacity
// entries.
func NewQueue[I ID](store storetypes.KVStore, capacity int) Queue[I] {
	if capacity < 0 {
		capacity = 0
	}

	return Queue[I]{store: store, capacity: capacity}
}

// ValidateEntries checks that entries can be imported into an empty queue of
// the given capacity.
func ValidateEntries[I ID](capacity int, entries []Entry[I]) error {
	if len(entries) > capacity {
		return errorsmod.Wrapf(ErrCapacityExceeded, "%d entries, capacity %d", len(entries), capacity)
	}

	seen := make(map[I]struct{}, len(entries))
	for i, e := range entries {
		if i > 0 && entries[i-1].DueAt > e.DueAt {
			return errorsmod.Wrapf(ErrUnsortedEntries, "at index %d", i)
		}
		if _, ok := seen[e.ID]; ok {
			return errorsmod.Wrapf(ErrDuplicateID, "entry %d: %v", i, e.ID)
		}
		seen[e.ID] = struct{}{}
	}

	return nil
}

// Import inserts entries, which must be sorted by due block. Their relative
// order is kept for equal due blocks.
func (q Queue[I]) Import(entries []Entry[I]) error {
	for i, e := range entries {
		if i > 0 && entries[i-1].DueAt > e.DueAt {
			return errorsmod.Wrapf(ErrUnsortedEntries, "at index %d", i)
		}
		if err := q.Insert(e.ID, e.DueAt); err != nil {
			return errorsmod.Wrapf(err, "entry %d", i)
		}
	}

	return nil
}

// Insert schedules id at due. The entry is placed after every entry whose due
// block is lower than or equal to due.
func (q Queue[I]) Insert(id I, due uint64) error {
	if q.Contains(id) {
		return ErrDuplicateID
	}
	if q.IsFull() {
		return ErrCapacityExceeded
	}

	seq := readUint64(q.store, seqKey) + 1
	q.store.Set(seqKey, storetypes.Uint64ToBigEndian(seq))

	q.store.Set(dueKey(due, seq), storetypes.Uint64ToBigEndian(uint64(id)))
	q.store.Set(idKey(id), append(storetypes.Uint64ToBigEndian(due), storetypes.Uint64ToBigEndian(seq)...))
	q.store.Set(lenKey, storetypes.Uint64ToBigEndian(uint64(q.Len()+1)))

	return nil
}

// Remove drops the deadline of id and reports whether one existed.
func (q Queue[I]) Remove(id I) bool {
	bz := q.store.Get(idKey(id))
	if bz == nil {
		return false
	}

	q.store.Delete(append(append([]byte(nil), dueKeyPrefix...), bz...))
	q.store.Delete(idKey(id))
	q.store.Set(lenKey, storetypes.Uint64ToBigEndian(uint64(q.Len()-1)))

	return true
}

// Update moves id to a new due block and reports whether id was queued. The
// rescheduled entry goes behind entries already due at the same block.
func (q Queue[I]) Update(id I, due uint64) bool {
	if !q.Remove(id) {
		return false
	}

	// the slot freed by Remove guarantees room for the insert
	if err := q.Insert(id, due); err != nil {
		panic(fmt.Sprintf("deadline queue: reinsert failed: %v", err))
	}

	return true
}

// Next returns the earliest id if it is due at or before now, without
// removing it.
func (q Queue[I]) Next(now uint64) (I, bool) {
	e, ok := q.front(now)
	return e.ID, ok
}

// PopNext returns and removes the earliest id if it is due at or before now.
func (q Queue[I]) PopNext(now uint64) (I, bool) {
	e, ok := q.PopNextEntry(now)
	return e.ID, ok
}

// PopNextEntry is PopNext that also returns the block the entry was due at.
func (q Queue[I]) PopNextEntry(now uint64) (Entry[I], bool) {
	e, ok := q.front(now)
	if !ok {
		return e, false
	}

	q.Remove(e.ID)

	return e, true
}

func (q Queue[I]) front(now uint64) (Entry[I], bool) {
	it := storetypes.KVStorePrefixIterator(q.store, dueKeyPrefix)
	defer it.Close()

	if !it.Valid() {
		return Entry[I]{}, false
	}

	e := entryFromKV[I](it.Key(), it.Value())
	if e.DueAt > now {
		return Entry[I]{}, false
	}

	return e, true
}

// DueAt returns the due block of id.
func (q Queue[I]) DueAt(id I) (uint64, bool) {
	bz := q.store.Get(idKey(id))
	if bz == nil {
		return 0, false
	}

	return storetypes.BigEndianToUint64(bz[:8]), true
}

// Contains reports whether id has a deadline.
func (q Queue[I]) Contains(id I) bool {
	return q.store.Has(idKey(id))
}

// Len returns the number of queued deadlines.
func (q Queue[I]) Len() int {
	return int(readUint64(q.store, lenKey))
}

// Cap returns the maximum number of deadlines the queue can hold.
func (q Queue[I]) Cap() int {
	return q.capacity
}

// IsFull reports whether an insert would exceed the capacity.
func (q Queue[I]) IsFull() bool {
	return q.Len() >= q.capacity
}

// Entries returns the queue contents in processing order.
func (q Queue[I]) Entries() []Entry[I] {
	entries := make([]Entry[I], 0, q.Len())

	it := storetypes.KVStorePrefixIterator(q.store, dueKeyPrefix)
	defer it.Close()

	for ; it.Valid(); it.Next() {
		entries = append(entries, entryFromKV[I](it.Key(), it.Value()))
	}

	return entries
}

func dueKey(due, seq uint64) []byte {
	key := make([]byte, 0, len(dueKeyPrefix)+16)
	key = append(key, dueKeyPrefix...)
	key = append(key, storetypes.Uint64ToBigEndian(due)...)

	return append(key, storetypes.Uint64ToBigEndian(seq)...)
}

func idKey[I ID](id I) []byte {
	return append(append([]byte(nil), idKeyPrefix...), storetypes.Uint64ToBigEndian(uint64(id))...)
}

func entryFromKV[I ID](key, value []byte) Entry[I] {
	return Entry[I]{
		ID:    I(storetypes.BigEndianToUint64(value)),
		DueAt: storetypes.BigEndianToUint64(key[len(dueKeyPrefix) : len(dueKeyPrefix)+8]),
	}
}

func readUint64(store storetypes.KVStore, key []byte) uint64 {
	bz := store.Get(key)
	if bz == nil {
		return 0
	}

	return storetypes.BigEndianToUint64(bz)
}
