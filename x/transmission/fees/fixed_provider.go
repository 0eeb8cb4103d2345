package fees

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

var _ types.FeeCollectorProvider = (*FixedAddressFeeCollectorProvider)(nil)

// FixedAddressFeeCollectorProvider sends protocol fees to a fixed address,
// usually the module account.
type FixedAddressFeeCollectorProvider struct {
	collector sdk.AccAddress
}

// NewFixedAddressFeeCollectorProvider creates a fee collector provider for a fixed address.
func NewFixedAddressFeeCollectorProvider(collector sdk.AccAddress) *FixedAddressFeeCollectorProvider {
	return &FixedAddressFeeCollectorProvider{
		collector: collector,
	}
}

// NewModuleAccountFeeCollectorProvider sends protocol fees to the transmission
// module account.
func NewModuleAccountFeeCollectorProvider() *FixedAddressFeeCollectorProvider {
	return NewFixedAddressFeeCollectorProvider(types.ModuleAddress)
}

func (p *FixedAddressFeeCollectorProvider) GetFeeCollector(_ sdk.Context) (sdk.AccAddress, error) {
	if p.collector.Empty() {
		return nil, fmt.Errorf("fee collector address is empty")
	}

	return p.collector, nil
}
