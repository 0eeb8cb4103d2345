package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

const (
	// ModuleName is the name of the auction module
	ModuleName = "auction"

	// StoreKey is the default store key for the auction module
	StoreKey = ModuleName

	// RouterKey is the message route for the auction module
	RouterKey = ModuleName
)

const (
	prefixParams = iota + 1
	prefixAuction
	prefixDeadlines
	prefixClaim
)

var (
	// KeyParams is the store key for the auction module's parameters.
	KeyParams = []byte{prefixParams}

	// KeyPrefixAuction prefixes every live auction by nft id.
	KeyPrefixAuction = []byte{prefixAuction}

	// KeyPrefixDeadlines holds the deadline queue of the live auctions.
	KeyPrefixDeadlines = []byte{prefixDeadlines}

	// KeyPrefixClaim prefixes the outbid amount owed to every account.
	KeyPrefixClaim = []byte{prefixClaim}
)

// AuctionKey returns the key of the auction of nftID below KeyPrefixAuction.
func AuctionKey(nftID uint32) []byte {
	return timedtypes.Uint32ToBigEndian(nftID)
}

// ModuleAddress is the escrow account holding bids until the auction settles.
var ModuleAddress = sdk.AccAddress(address.Module(ModuleName))
