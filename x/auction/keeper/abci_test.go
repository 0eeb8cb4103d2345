package keeper_test

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/tempo-labs/timed-contracts/deadline"
	"github.com/tempo-labs/timed-contracts/testutils"
	"github.com/tempo-labs/timed-contracts/x/auction/keeper"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	marketplacetypes "github.com/tempo-labs/timed-contracts/x/marketplace/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
)

func (suite *KeeperTestSuite) TestAuctionWithoutBidsIsCancelled() {
	suite.Require().NoError(suite.createAuction(10, 20, nil))

	suite.atHeight(10)
	suite.keepers.AuctionKeeper.BeginBlocker(suite.ctx)
	a, ok := suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().True(ok)
	suite.Require().True(a.HasStarted(10))

	suite.atHeight(19)
	suite.keepers.AuctionKeeper.BeginBlocker(suite.ctx)
	_, ok = suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().True(ok)

	suite.atHeight(20)
	suite.keepers.AuctionKeeper.BeginBlocker(suite.ctx)

	_, ok = suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().False(ok)
	suite.Require().Empty(suite.keepers.AuctionKeeper.GetDeadlines(suite.ctx))

	events := testutils.EventsOfType(suite.ctx, types.EventTypeAuctionCancelled)
	suite.Require().Len(events, 1)
	reason, _ := testutils.Attribute(events[0], types.AttributeKeyReason)
	suite.Require().Equal(types.AttributeValueNoBids, reason)

	nft, _ := suite.keepers.NFTKeeper.GetNFT(suite.ctx, suite.nftID)
	suite.Require().Equal(suite.creator, nft.Owner)
	suite.Require().False(nft.State.IsListed)
}

func (suite *KeeperTestSuite) TestHighestBidWinsAtEndBlock() {
	suite.Require().NoError(suite.createAuction(10, 20, intPtr(150)))

	suite.atHeight(11)
	suite.Require().NoError(suite.addBid(suite.alice, 100))
	suite.atHeight(12)
	suite.Require().NoError(suite.addBid(suite.bob, 200))

	// a bid above the buy it price does not settle the auction
	_, ok := suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().True(ok)

	suite.atHeight(20)
	suite.keepers.AuctionKeeper.BeginBlocker(suite.ctx)

	nft, _ := suite.keepers.NFTKeeper.GetNFT(suite.ctx, suite.nftID)
	suite.Require().Equal(suite.bob, nft.Owner)
	suite.Require().False(nft.State.IsListed)

	suite.Require().Equal(math.NewInt(800), suite.balance(suite.bob))
	suite.Require().Equal(math.NewInt(20), suite.balance(suite.marketOwner))
	suite.Require().Equal(math.NewInt(18), suite.balance(suite.artist))
	suite.Require().Equal(math.NewInt(162), suite.balance(suite.creator))

	suite.Require().Equal(math.NewInt(100), suite.keepers.AuctionKeeper.GetClaim(suite.ctx, suite.alice))
	suite.Require().Equal(math.NewInt(900), suite.balance(suite.alice))
	suite.Require().Len(testutils.EventsOfType(suite.ctx, types.EventTypeAuctionCompleted), 1)
	suite.requireInvariants()

	res, err := suite.msgServer.Claim(suite.ctx, &types.MsgClaim{Claimer: suite.alice})
	suite.Require().NoError(err)
	suite.Require().Equal(math.NewInt(100), res.Amount)
	suite.Require().Equal(math.NewInt(1_000), suite.balance(suite.alice))
	suite.Require().True(suite.keepers.AuctionKeeper.GetClaim(suite.ctx, suite.alice).IsZero())
	suite.Require().True(suite.balance(types.ModuleAddress.String()).IsZero())
}

func (suite *KeeperTestSuite) TestActionsInBlockLimit() {
	params := suite.params()
	params.ActionsInBlockLimit = 1
	suite.Require().NoError(suite.keepers.AuctionKeeper.SetParams(suite.ctx, params))

	other, err := suite.keepers.NFTKeeper.CreateNFT(suite.ctx, suite.creator, "", 0)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.createAuction(10, 20, nil))
	_, err = suite.msgServer.CreateAuction(suite.ctx, &types.MsgCreateAuction{
		Creator:       suite.creator,
		NFTID:         other,
		MarketplaceID: suite.marketplaceID,
		StartBlock:    10,
		EndBlock:      20,
		StartPrice:    math.NewInt(1),
	})
	suite.Require().NoError(err)

	suite.atHeight(20)
	suite.keepers.AuctionKeeper.BeginBlocker(suite.ctx)

	// first created, first resolved
	_, ok := suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().False(ok)
	_, ok = suite.keepers.AuctionKeeper.GetAuction(suite.ctx, other)
	suite.Require().True(ok)

	suite.atHeight(21)
	suite.keepers.AuctionKeeper.BeginBlocker(suite.ctx)
	suite.Require().Empty(suite.keepers.AuctionKeeper.GetAuctions(suite.ctx))
}

func (suite *KeeperTestSuite) TestGenesisRoundTrip() {
	suite.Require().NoError(suite.createAuction(10, 20, intPtr(500)))
	suite.atHeight(11)
	suite.Require().NoError(suite.addBid(suite.alice, 100))
	suite.Require().NoError(suite.addBid(suite.bob, 200))

	exported := suite.keepers.AuctionKeeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(exported.Validate())

	// a fresh context has empty stores
	ctx := testutils.NewContext(11)
	k := keeper.NewKeeper(testutils.StoreKeys[types.StoreKey], suite.keepers.BankKeeper, suite.keepers.NFTKeeper, suite.keepers.MarketplaceKeeper, suite.bob)
	k.InitGenesis(ctx, *exported)
	suite.Require().Equal(exported, k.ExportGenesis(ctx))
}

func TestBeginBlockerIsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	bankKeeper := testutils.NewMockBankKeeper(ctrl)
	nftKeeper := testutils.NewMockNFTKeeper(ctrl)
	marketplaceKeeper := testutils.NewMockMarketplaceKeeper(ctrl)

	var (
		creator = testutils.Address("creator")
		alice   = testutils.Address("alice")
		bob     = testutils.Address("bob")
		carol   = testutils.Address("carol")
	)

	bankKeeper.EXPECT().
		Withdraw(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, amount math.Int, _ balancestypes.ExistenceRequirement) (balancestypes.Imbalance, error) {
			return balancestypes.Imbalance{Amount: amount}, nil
		}).
		AnyTimes()
	bankKeeper.EXPECT().Deposit(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	nftKeeper.EXPECT().SetFlag(gomock.Any(), gomock.Any(), nfttypes.FlagListed, false).Return(nil).AnyTimes()
	nftKeeper.EXPECT().GetNFT(gomock.Any(), gomock.Any()).Return(nfttypes.NFT{Creator: creator}, true).AnyTimes()
	nftKeeper.EXPECT().SetOwner(gomock.Any(), uint32(1), bob).Return(errors.New("storage corrupted"))
	nftKeeper.EXPECT().SetOwner(gomock.Any(), uint32(2), carol).Return(nil)

	marketplaceKeeper.EXPECT().
		GetMarketplace(gomock.Any(), gomock.Any()).
		Return(marketplacetypes.Marketplace{Owner: creator}, true).
		AnyTimes()

	k := keeper.NewKeeper(testutils.StoreKeys[types.StoreKey], bankKeeper, nftKeeper, marketplaceKeeper, testutils.Address("authority"))

	auction := func(bids ...types.Bid) types.RawAuction {
		return types.RawAuction{
			Creator:     creator,
			StartBlock:  10,
			EndBlock:    20,
			StartPrice:  math.NewInt(1),
			Bids:        bids,
			BidderLimit: 5,
		}
	}
	first := auction(types.Bid{Bidder: alice, Amount: math.NewInt(100)}, types.Bid{Bidder: bob, Amount: math.NewInt(200)})
	first.NFTID = 1
	second := auction(types.Bid{Bidder: carol, Amount: math.NewInt(300)})
	second.NFTID = 2

	ctx := testutils.NewContext(20)
	k.InitGenesis(ctx, *types.NewGenesisState(
		types.DefaultParams(),
		[]types.RawAuction{first, second},
		[]deadline.Entry[uint32]{{ID: 1, DueAt: 20}, {ID: 2, DueAt: 20}},
		[]types.Claim{},
	))

	k.BeginBlocker(ctx)

	require.Empty(t, k.GetAuctions(ctx))
	require.Empty(t, k.GetDeadlines(ctx))
	require.NoError(t, k.CheckInvariants(ctx))

	// bids of the broken auction are claimable
	require.Equal(t, math.NewInt(100), k.GetClaim(ctx, alice))
	require.Equal(t, math.NewInt(200), k.GetClaim(ctx, bob))
	require.True(t, k.GetClaim(ctx, carol).IsZero())

	failed := testutils.EventsOfType(ctx, types.EventTypeAuctionResolutionFailed)
	require.Len(t, failed, 1)
	id, _ := testutils.Attribute(failed[0], types.AttributeKeyNFTID)
	require.Equal(t, "1", id)

	require.Len(t, testutils.EventsOfType(ctx, types.EventTypeAuctionCompleted), 1)
}
