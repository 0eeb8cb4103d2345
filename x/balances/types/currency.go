package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// ExistenceRequirement tells Withdraw whether the account must survive the
// withdrawal.
type ExistenceRequirement uint8

const (
	// KeepAlive rejects withdrawals that leave less than the existential deposit.
	KeepAlive ExistenceRequirement = iota
	// AllowDeath lets the account be reaped when its balance drops below the
	// existential deposit.
	AllowDeath
)

func (r ExistenceRequirement) String() string {
	if r == KeepAlive {
		return "keep_alive"
	}

	return "allow_death"
}

// Imbalance is an amount taken out of an account that has not been credited
// anywhere yet. It must be handed to Deposit.
type Imbalance struct {
	Amount math.Int
}

// ZeroImbalance returns an empty imbalance.
func ZeroImbalance() Imbalance {
	return Imbalance{Amount: math.ZeroInt()}
}

// Currency is the balance capability consumed by the contract modules.
type Currency interface {
	Withdraw(ctx context.Context, addr string, amount math.Int, req ExistenceRequirement) (Imbalance, error)
	Deposit(ctx context.Context, addr string, imbalance Imbalance)
	FreeBalance(ctx context.Context, addr string) math.Int
}

// Transfer moves amount from one account to another. A zero amount or a
// transfer to self is a no-op.
func Transfer(ctx context.Context, c Currency, from, to string, amount math.Int, req ExistenceRequirement) error {
	if amount.IsNil() || amount.IsZero() || from == to {
		return nil
	}
	if amount.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidAmount, "negative transfer amount %s", amount)
	}

	imbalance, err := c.Withdraw(ctx, from, amount, req)
	if err != nil {
		return err
	}

	c.Deposit(ctx, to, imbalance)

	return nil
}
