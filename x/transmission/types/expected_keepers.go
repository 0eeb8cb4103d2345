package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
)

// BankKeeper defines the contract required for protocol fee payments.
type BankKeeper interface {
	Withdraw(ctx context.Context, addr string, amount math.Int, req balancestypes.ExistenceRequirement) (balancestypes.Imbalance, error)
	Deposit(ctx context.Context, addr string, imbalance balancestypes.Imbalance)
	FreeBalance(ctx context.Context, addr string) math.Int
}

// NFTKeeper defines the contract required for NFT ownership and state.
type NFTKeeper interface {
	GetNFT(ctx context.Context, id uint32) (nfttypes.NFT, bool)
	SetOwner(ctx context.Context, id uint32, owner string) error
	SetFlag(ctx context.Context, id uint32, flag nfttypes.Flag, value bool) error
}

// FeeCollectorProvider is an interface used to determine the address to which
// protocol fees are sent.
type FeeCollectorProvider interface {
	GetFeeCollector(ctx sdk.Context) (sdk.AccAddress, error)
}
