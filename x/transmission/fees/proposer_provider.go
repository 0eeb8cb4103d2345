package fees

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

var _ types.FeeCollectorProvider = (*ProposerFeeCollectorProvider)(nil)

// ProposerFeeCollectorProvider sends protocol fees to the proposer of the
// current block, as recorded in the block header.
type ProposerFeeCollectorProvider struct{}

// NewProposerFeeCollectorProvider creates a fee collector provider for block proposers.
func NewProposerFeeCollectorProvider() *ProposerFeeCollectorProvider {
	return &ProposerFeeCollectorProvider{}
}

func (p *ProposerFeeCollectorProvider) GetFeeCollector(ctx sdk.Context) (sdk.AccAddress, error) {
	proposer := ctx.BlockHeader().ProposerAddress
	if len(proposer) == 0 {
		return nil, errorsmod.Wrapf(types.ErrFeeCollectorUnavailable, "block %d has no proposer", ctx.BlockHeight())
	}

	return sdk.AccAddress(proposer), nil
}
