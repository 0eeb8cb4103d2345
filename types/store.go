package types

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
)

// Uint32ToBigEndian encodes id so that keys iterate in id order.
func Uint32ToBigEndian(id uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, id)
}

// BigEndianToUint32 decodes a key written by Uint32ToBigEndian.
func BigEndianToUint32(bz []byte) uint32 {
	if len(bz) < 4 {
		return 0
	}

	return binary.BigEndian.Uint32(bz)
}

// GetJSON decodes the value stored at key into v and reports whether it was
// found.
func GetJSON(store storetypes.KVStore, key []byte, v any) (bool, error) {
	bz := store.Get(key)
	if bz == nil {
		return false, nil
	}

	if err := json.Unmarshal(bz, v); err != nil {
		return true, fmt.Errorf("failed to decode value at %X: %w", key, err)
	}

	return true, nil
}

// MustGetJSON is GetJSON for values written by this process. A value that
// does not decode means the store is corrupt.
func MustGetJSON(store storetypes.KVStore, key []byte, v any) bool {
	ok, err := GetJSON(store, key, v)
	if err != nil {
		panic(err)
	}

	return ok
}

// SetJSON stores the JSON encoding of v at key.
func SetJSON(store storetypes.KVStore, key []byte, v any) {
	store.Set(key, MustMarshalJSON(v))
}

// GetUint32 returns the counter stored at key.
func GetUint32(store storetypes.KVStore, key []byte) uint32 {
	return BigEndianToUint32(store.Get(key))
}

// SetUint32 stores a counter at key.
func SetUint32(store storetypes.KVStore, key []byte, v uint32) {
	store.Set(key, Uint32ToBigEndian(v))
}
