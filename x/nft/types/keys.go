package types

const (
	// ModuleName is the name of the nft module
	ModuleName = "nft"

	// StoreKey is the default store key for the nft module
	StoreKey = ModuleName
)

const (
	prefixNextID = iota + 1
	prefixNFT
)

var (
	// KeyNextID is the store key of the id handed to the next created nft.
	KeyNextID = []byte{prefixNextID}

	// KeyPrefixNFT prefixes every nft by id.
	KeyPrefixNFT = []byte{prefixNFT}
)
