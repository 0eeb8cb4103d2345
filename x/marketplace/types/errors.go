package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/marketplace module sentinel errors
var (
	ErrMarketplaceNotFound = errorsmod.Register(ModuleName, 2, "marketplace not found")
	ErrInvalidCommission   = errorsmod.Register(ModuleName, 3, "invalid commission fee")
)
