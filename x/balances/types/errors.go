package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/balances module sentinel errors
var (
	ErrInsufficientBalance = errorsmod.Register(ModuleName, 2, "insufficient balance")
	ErrKeepAlive           = errorsmod.Register(ModuleName, 3, "withdrawal would kill the account")
	ErrInvalidAmount       = errorsmod.Register(ModuleName, 4, "invalid amount")
	ErrExistentialDeposit  = errorsmod.Register(ModuleName, 5, "amount would create an account below the existential deposit")
)
