package types

const (
	// ModuleName is the name of the balances module
	ModuleName = "balances"

	// StoreKey is the default store key for the balances module
	StoreKey = ModuleName
)

const (
	prefixParams = iota + 1
	prefixBalance
)

var (
	// KeyParams is the store key for the balances module's parameters.
	KeyParams = []byte{prefixParams}

	// KeyPrefixBalance prefixes the free balance of every account.
	KeyPrefixBalance = []byte{prefixBalance}
)
