package types

import (
	"fmt"
)

var (
	DefaultContractExpirationDuration uint64 = 432_000
	DefaultSimultaneousContractLimit  uint32 = 1_000_000
	DefaultActionsInBlockLimit        uint32 = 1_000
	DefaultAccountSizeLimit           uint32 = 10
)

// Params defines the rent module parameters. Durations are in blocks.
type Params struct {
	// ContractExpirationDuration is how long a contract waits for a rentee.
	ContractExpirationDuration uint64 `json:"contract_expiration_duration"`
	// SimultaneousContractLimit is the capacity of each deadline queue.
	SimultaneousContractLimit uint32 `json:"simultaneous_contract_limit"`
	// ActionsInBlockLimit caps resolutions per block, zero meaning no cap.
	ActionsInBlockLimit uint32 `json:"actions_in_block_limit"`
	// AccountSizeLimit bounds allow lists and pending offers.
	AccountSizeLimit uint32 `json:"account_size_limit"`
}

// NewParams returns a new Params instance with the provided values.
func NewParams(expiration uint64, simultaneousContractLimit, actionsInBlockLimit, accountSizeLimit uint32) Params {
	return Params{
		ContractExpirationDuration: expiration,
		SimultaneousContractLimit:  simultaneousContractLimit,
		ActionsInBlockLimit:        actionsInBlockLimit,
		AccountSizeLimit:           accountSizeLimit,
	}
}

// DefaultParams returns the default x/rent parameters.
func DefaultParams() Params {
	return NewParams(
		DefaultContractExpirationDuration,
		DefaultSimultaneousContractLimit,
		DefaultActionsInBlockLimit,
		DefaultAccountSizeLimit,
	)
}

// Validate performs basic validation on the parameters.
func (p Params) Validate() error {
	if p.ContractExpirationDuration == 0 {
		return fmt.Errorf("contract expiration duration must be positive")
	}

	if p.SimultaneousContractLimit == 0 {
		return fmt.Errorf("simultaneous contract limit must be positive")
	}

	if p.AccountSizeLimit == 0 {
		return fmt.Errorf("account size limit must be positive")
	}

	return nil
}
