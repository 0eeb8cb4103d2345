// Package keeper provides methods to initialize keepers backed by an in memory
// multistore for test purposes
package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/tempo-labs/timed-contracts/testutils"
	auctionkeeper "github.com/tempo-labs/timed-contracts/x/auction/keeper"
	auctiontypes "github.com/tempo-labs/timed-contracts/x/auction/types"
	balanceskeeper "github.com/tempo-labs/timed-contracts/x/balances/keeper"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	marketplacekeeper "github.com/tempo-labs/timed-contracts/x/marketplace/keeper"
	marketplacetypes "github.com/tempo-labs/timed-contracts/x/marketplace/types"
	nftkeeper "github.com/tempo-labs/timed-contracts/x/nft/keeper"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	rentkeeper "github.com/tempo-labs/timed-contracts/x/rent/keeper"
	renttypes "github.com/tempo-labs/timed-contracts/x/rent/types"
	transmissionkeeper "github.com/tempo-labs/timed-contracts/x/transmission/keeper"
	transmissiontypes "github.com/tempo-labs/timed-contracts/x/transmission/types"
)

// Authority is the address allowed to update module params in tests.
var Authority = testutils.Address("authority")

// ModuleAccounts are the escrow accounts the balances keeper never reaps.
var ModuleAccounts = []string{
	auctiontypes.ModuleAddress.String(),
	renttypes.ModuleAddress.String(),
	transmissiontypes.ModuleAddress.String(),
}

// TestKeepers holds all keepers used during keeper tests for all modules
type TestKeepers struct {
	BankKeeper         *balanceskeeper.Keeper
	NFTKeeper          *nftkeeper.Keeper
	MarketplaceKeeper  *marketplacekeeper.Keeper
	AuctionKeeper      *auctionkeeper.Keeper
	RentKeeper         *rentkeeper.Keeper
	TransmissionKeeper *transmissionkeeper.Keeper
}

// TestMsgServers holds all message servers used during keeper tests for all modules
type TestMsgServers struct {
	AuctionMsgServer      *auctionkeeper.MsgServer
	RentMsgServer         *rentkeeper.MsgServer
	TransmissionMsgServer *transmissionkeeper.MsgServer
}

// NewTestSetup returns initialized instances of all the keepers and message
// servers of the modules. Every module starts from its default genesis in the
// stores of ctx, which must come from testutils.NewContext.
func NewTestSetup(t testing.TB, ctx sdk.Context) (TestKeepers, TestMsgServers) {
	t.Helper()

	keys := testutils.StoreKeys

	bankKeeper := balanceskeeper.NewKeeper(keys[balancestypes.StoreKey], ModuleAccounts...)
	nftKeeper := nftkeeper.NewKeeper(keys[nfttypes.StoreKey])
	marketplaceKeeper := marketplacekeeper.NewKeeper(keys[marketplacetypes.StoreKey])

	tk := TestKeepers{
		BankKeeper:         bankKeeper,
		NFTKeeper:          nftKeeper,
		MarketplaceKeeper:  marketplaceKeeper,
		AuctionKeeper:      auctionkeeper.NewKeeper(keys[auctiontypes.StoreKey], bankKeeper, nftKeeper, marketplaceKeeper, Authority),
		RentKeeper:         rentkeeper.NewKeeper(keys[renttypes.StoreKey], bankKeeper, nftKeeper, Authority),
		TransmissionKeeper: transmissionkeeper.NewKeeper(keys[transmissiontypes.StoreKey], bankKeeper, nftKeeper, Authority),
	}

	require.NoError(t, tk.BankKeeper.SetParams(ctx, balancestypes.DefaultParams()))
	require.NoError(t, tk.AuctionKeeper.SetParams(ctx, auctiontypes.DefaultParams()))
	require.NoError(t, tk.RentKeeper.SetParams(ctx, renttypes.DefaultParams()))
	require.NoError(t, tk.TransmissionKeeper.SetParams(ctx, transmissiontypes.DefaultParams()))

	tms := TestMsgServers{
		AuctionMsgServer:      auctionkeeper.NewMsgServerImpl(tk.AuctionKeeper),
		RentMsgServer:         rentkeeper.NewMsgServerImpl(tk.RentKeeper),
		TransmissionMsgServer: transmissionkeeper.NewMsgServerImpl(tk.TransmissionKeeper),
	}

	return tk, tms
}
