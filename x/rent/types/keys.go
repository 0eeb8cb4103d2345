package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

const (
	// ModuleName is the name of the rent module
	ModuleName = "rent"

	// StoreKey is the default store key for the rent module
	StoreKey = ModuleName

	// RouterKey is the message route for the rent module
	RouterKey = ModuleName
)

const (
	prefixParams = iota + 1
	prefixContract
	prefixOffers
	prefixAvailableQueue
	prefixFixedQueue
	prefixSubscriptionQueue
)

var (
	// KeyParams is the store key for the rent module's parameters.
	KeyParams = []byte{prefixParams}

	// KeyPrefixContract prefixes every live contract by nft id.
	KeyPrefixContract = []byte{prefixContract}

	// KeyPrefixOffers prefixes the pending offers of a contract by nft id.
	KeyPrefixOffers = []byte{prefixOffers}

	// KeyPrefixAvailableQueue holds contracts waiting for a rentee until they
	// expire.
	KeyPrefixAvailableQueue = []byte{prefixAvailableQueue}

	// KeyPrefixFixedQueue holds started fixed contracts until their end block.
	KeyPrefixFixedQueue = []byte{prefixFixedQueue}

	// KeyPrefixSubscriptionQueue holds started subscriptions until their next
	// renewal.
	KeyPrefixSubscriptionQueue = []byte{prefixSubscriptionQueue}
)

// ContractKey returns the key of the contract of nftID below
// KeyPrefixContract and KeyPrefixOffers.
func ContractKey(nftID uint32) []byte {
	return timedtypes.Uint32ToBigEndian(nftID)
}

// ModuleAddress holds cancellation fees until a contract ends.
var ModuleAddress = sdk.AccAddress(address.Module(ModuleName))
