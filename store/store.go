// Package store persists block events and engine snapshots in a cosmos-db
// database.
package store

import (
	"encoding/binary"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	eventsPrefix    = []byte{0x01}
	snapshotsPrefix = []byte{0x02}
)

// Store wraps a key value database. Heights are big endian encoded so that
// iteration follows block order.
type Store struct {
	db dbm.DB
}

// New returns a store backed by db.
func New(db dbm.DB) *Store {
	return &Store{db: db}
}

// Open opens the database name of the given backend in dir.
func Open(name string, backend dbm.BackendType, dir string) (*Store, error) {
	db, err := dbm.NewDB(name, backend, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database in %s: %w", backend, dir, err)
	}

	return New(db), nil
}

func key(prefix []byte, height uint64) []byte {
	return append(append([]byte(nil), prefix...), sdk.Uint64ToBigEndian(height)...)
}

func eventKey(height uint64, index uint32) []byte {
	return binary.BigEndian.AppendUint32(key(eventsPrefix, height), index)
}

// AppendEvents stores the encoded events after those already stored for the
// block. Each event is written under its own (height, index) key, so the
// cost of a call does not grow with the events of the block.
func (s *Store) AppendEvents(height uint64, events [][]byte) error {
	if len(events) == 0 {
		return nil
	}

	next, err := s.nextEventIndex(height)
	if err != nil {
		return err
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	for i, bz := range events {
		if err := batch.Set(eventKey(height, next+uint32(i)), bz); err != nil {
			return err
		}
	}

	return batch.WriteSync()
}

func (s *Store) nextEventIndex(height uint64) (uint32, error) {
	it, err := s.db.ReverseIterator(key(eventsPrefix, height), key(eventsPrefix, height+1))
	if err != nil {
		return 0, err
	}
	defer it.Close()

	if !it.Valid() {
		return 0, it.Error()
	}

	k := it.Key()

	return binary.BigEndian.Uint32(k[len(k)-4:]) + 1, it.Error()
}

// Events returns the encoded events of a block in the order they were
// appended.
func (s *Store) Events(height uint64) ([][]byte, bool, error) {
	it, err := s.db.Iterator(key(eventsPrefix, height), key(eventsPrefix, height+1))
	if err != nil {
		return nil, false, err
	}
	defer it.Close()

	var events [][]byte
	for ; it.Valid(); it.Next() {
		events = append(events, append([]byte(nil), it.Value()...))
	}

	return events, len(events) > 0, it.Error()
}

// SaveSnapshot stores an encoded engine snapshot taken at height and drops
// all but the keepRecent most recent snapshots. Zero keeps every snapshot.
func (s *Store) SaveSnapshot(height uint64, bz []byte, keepRecent uint64) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(key(snapshotsPrefix, height), bz); err != nil {
		return err
	}

	if keepRecent > 0 && height > 0 {
		older, err := s.snapshotHeights(0, height)
		if err != nil {
			return err
		}
		if keep := int(keepRecent) - 1; len(older) > keep {
			for _, h := range older[:len(older)-keep] {
				if err := batch.Delete(key(snapshotsPrefix, h)); err != nil {
					return err
				}
			}
		}
	}

	return batch.WriteSync()
}

// LatestSnapshot returns the most recent snapshot and its height.
func (s *Store) LatestSnapshot() (uint64, []byte, bool, error) {
	it, err := s.db.ReverseIterator(snapshotsPrefix, storetypes.PrefixEndBytes(snapshotsPrefix))
	if err != nil {
		return 0, nil, false, err
	}
	defer it.Close()

	if !it.Valid() {
		return 0, nil, false, it.Error()
	}

	height := sdk.BigEndianToUint64(it.Key()[len(snapshotsPrefix):])
	bz := append([]byte(nil), it.Value()...)

	return height, bz, true, it.Error()
}

// SnapshotHeights returns the heights of every stored snapshot in ascending
// order.
func (s *Store) SnapshotHeights() ([]uint64, error) {
	return s.snapshotHeights(0, 0)
}

// snapshotHeights lists snapshot heights in [from, to). A zero to means no
// upper bound.
func (s *Store) snapshotHeights(from, to uint64) ([]uint64, error) {
	end := storetypes.PrefixEndBytes(snapshotsPrefix)
	if to > 0 {
		end = key(snapshotsPrefix, to)
	}

	it, err := s.db.Iterator(key(snapshotsPrefix, from), end)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var heights []uint64
	for ; it.Valid(); it.Next() {
		heights = append(heights, sdk.BigEndianToUint64(it.Key()[len(snapshotsPrefix):]))
	}

	return heights, it.Error()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
