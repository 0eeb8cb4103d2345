package testutils

import (
	"math/rand"

	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"

	auctiontypes "github.com/tempo-labs/timed-contracts/x/auction/types"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	marketplacetypes "github.com/tempo-labs/timed-contracts/x/marketplace/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	renttypes "github.com/tempo-labs/timed-contracts/x/rent/types"
	transmissiontypes "github.com/tempo-labs/timed-contracts/x/transmission/types"
)

// StoreKeys holds a key for the store of every module. Contexts built by
// NewContext mount all of them.
var StoreKeys = storetypes.NewKVStoreKeys(
	balancestypes.StoreKey,
	nfttypes.StoreKey,
	marketplacetypes.StoreKey,
	auctiontypes.StoreKey,
	renttypes.StoreKey,
	transmissiontypes.StoreKey,
)

// RandomAddresses returns n bech32 addresses of secp256k1 keys seeded from r.
func RandomAddresses(r *rand.Rand, n int) []string {
	addrs := make([]string, n)

	for i := range addrs {
		seed := make([]byte, 15)
		r.Read(seed)

		pk := secp256k1.GenPrivKeyFromSecret(seed).PubKey()
		addrs[i] = sdk.AccAddress(pk.Address()).String()
	}

	return addrs
}

// Address returns a deterministic bech32 address derived from name.
func Address(name string) string {
	return sdk.AccAddress([]byte(name)).String()
}

// NewContext returns a context at the given height backed by a fresh in
// memory multistore that mounts StoreKeys.
func NewContext(height int64) sdk.Context {
	ctx := testutil.DefaultContextWithKeys(StoreKeys, nil, nil)
	return ctx.WithBlockHeader(cmtproto.Header{Height: height})
}

// EventsOfType returns the events of ctx with the given type.
func EventsOfType(ctx sdk.Context, eventType string) sdk.Events {
	var out sdk.Events
	for _, e := range ctx.EventManager().Events() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}

	return out
}

// Attribute returns the value of key in e.
func Attribute(e sdk.Event, key string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}

	return "", false
}
