package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// DefaultExistentialDeposit is the default minimum balance an account must keep.
var DefaultExistentialDeposit = math.ZeroInt()

// Params defines the balances module parameters.
type Params struct {
	ExistentialDeposit math.Int `json:"existential_deposit"`
}

// NewParams returns a new Params instance with the provided values.
func NewParams(existentialDeposit math.Int) Params {
	return Params{ExistentialDeposit: existentialDeposit}
}

// DefaultParams returns the default x/balances parameters.
func DefaultParams() Params {
	return NewParams(DefaultExistentialDeposit)
}

// Validate performs basic validation on the parameters.
func (p Params) Validate() error {
	if p.ExistentialDeposit.IsNil() || p.ExistentialDeposit.IsNegative() {
		return fmt.Errorf("existential deposit must be non-negative: %s", p.ExistentialDeposit)
	}

	return nil
}
