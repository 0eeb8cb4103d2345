package types

const (
	// ModuleName is the name of the marketplace module
	ModuleName = "marketplace"

	// StoreKey is the default store key for the marketplace module
	StoreKey = ModuleName
)

const (
	prefixNextID = iota + 1
	prefixMarketplace
)

var (
	// KeyNextID is the store key of the id handed to the next created marketplace.
	KeyNextID = []byte{prefixNextID}

	// KeyPrefixMarketplace prefixes every marketplace by id.
	KeyPrefixMarketplace = []byte{prefixMarketplace}
)
