package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/nft module sentinel errors
var (
	ErrNFTNotFound  = errorsmod.Register(ModuleName, 2, "nft not found")
	ErrUnknownFlag  = errorsmod.Register(ModuleName, 3, "unknown nft state flag")
	ErrInvalidOwner = errorsmod.Register(ModuleName, 4, "invalid nft owner")
)
