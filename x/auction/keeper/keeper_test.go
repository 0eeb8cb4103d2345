package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	"github.com/tempo-labs/timed-contracts/testutils"
	testkeeper "github.com/tempo-labs/timed-contracts/testutils/keeper"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/auction/keeper"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
)

type KeeperTestSuite struct {
	suite.Suite

	ctx       sdk.Context
	keepers   testkeeper.TestKeepers
	msgServer *keeper.MsgServer

	artist        string
	creator       string
	alice         string
	bob           string
	carol         string
	marketOwner   string
	nftID         uint32
	marketplaceID uint32
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (suite *KeeperTestSuite) SetupTest() {
	suite.ctx = testutils.NewContext(1)
	tk, tms := testkeeper.NewTestSetup(suite.T(), suite.ctx)
	suite.keepers = tk
	suite.msgServer = tms.AuctionMsgServer

	suite.artist = testutils.Address("artist")
	suite.creator = testutils.Address("creator")
	suite.alice = testutils.Address("alice")
	suite.bob = testutils.Address("bob")
	suite.carol = testutils.Address("carol")
	suite.marketOwner = testutils.Address("market")

	params := types.DefaultParams()
	params.MinAuctionDuration = 5
	params.AuctionEndingPeriod = 2
	params.AuctionGracePeriod = 5
	suite.Require().NoError(tk.AuctionKeeper.SetParams(suite.ctx, params))

	var err error
	suite.nftID, err = tk.NFTKeeper.CreateNFT(suite.ctx, suite.artist, "ipfs://nft", timedtypes.PermillFromPercent(10))
	suite.Require().NoError(err)
	suite.Require().NoError(tk.NFTKeeper.SetOwner(suite.ctx, suite.nftID, suite.creator))

	suite.marketplaceID, err = tk.MarketplaceKeeper.CreateMarketplace(suite.ctx, suite.marketOwner, timedtypes.PermillFromPercent(10))
	suite.Require().NoError(err)

	for _, addr := range []string{suite.alice, suite.bob, suite.carol} {
		tk.BankKeeper.SetBalance(suite.ctx, addr, math.NewInt(1_000))
	}
}

// atHeight moves to block h with a fresh event manager.
func (suite *KeeperTestSuite) atHeight(h int64) {
	suite.ctx = suite.ctx.WithBlockHeight(h).WithEventManager(sdk.NewEventManager())
}

func (suite *KeeperTestSuite) balance(addr string) math.Int {
	return suite.keepers.BankKeeper.FreeBalance(suite.ctx, addr)
}

func (suite *KeeperTestSuite) createAuction(start, end uint64, buyItPrice *math.Int) error {
	_, err := suite.msgServer.CreateAuction(suite.ctx, &types.MsgCreateAuction{
		Creator:       suite.creator,
		NFTID:         suite.nftID,
		MarketplaceID: suite.marketplaceID,
		StartBlock:    start,
		EndBlock:      end,
		StartPrice:    math.NewInt(50),
		BuyItPrice:    buyItPrice,
	})
	return err
}

func (suite *KeeperTestSuite) addBid(bidder string, amount int64) error {
	_, err := suite.msgServer.AddBid(suite.ctx, &types.MsgAddBid{
		Bidder: bidder,
		NFTID:  suite.nftID,
		Amount: math.NewInt(amount),
	})
	return err
}

func (suite *KeeperTestSuite) requireInvariants() {
	msg, broken := keeper.AllInvariants(suite.keepers.AuctionKeeper)(suite.ctx)
	suite.Require().False(broken, msg)
}

func intPtr(v int64) *math.Int {
	i := math.NewInt(v)
	return &i
}

func (suite *KeeperTestSuite) params() types.Params {
	params, err := suite.keepers.AuctionKeeper.GetParams(suite.ctx)
	suite.Require().NoError(err)
	return params
}
