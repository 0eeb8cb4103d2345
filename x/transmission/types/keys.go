package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

const (
	// ModuleName is the name of the transmission module
	ModuleName = "transmission"

	// StoreKey is the default store key for the transmission module
	StoreKey = ModuleName

	// RouterKey is the message route for the transmission module
	RouterKey = ModuleName
)

const (
	prefixParams = iota + 1
	prefixTransmission
	prefixQueue
)

var (
	// KeyParams is the store key for the transmission module's parameters.
	KeyParams = []byte{prefixParams}

	// KeyPrefixTransmission prefixes every live protocol by nft id.
	KeyPrefixTransmission = []byte{prefixTransmission}

	// KeyPrefixQueue holds the timed protocols until their block.
	KeyPrefixQueue = []byte{prefixQueue}
)

// TransmissionKey returns the key of the protocol of nftID below
// KeyPrefixTransmission.
func TransmissionKey(nftID uint32) []byte {
	return timedtypes.Uint32ToBigEndian(nftID)
}

// ModuleAddress collects protocol fees unless another collector is configured.
var ModuleAddress = sdk.AccAddress(address.Module(ModuleName))
