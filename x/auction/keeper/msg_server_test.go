package keeper_test

import (
	"cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/tempo-labs/timed-contracts/testutils"
	testkeeper "github.com/tempo-labs/timed-contracts/testutils/keeper"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
)

func (suite *KeeperTestSuite) TestCreateAuction() {
	cases := []struct {
		description string
		malleate    func() *types.MsgCreateAuction
		expectedErr error
	}{
		{
			"start block in the past",
			func() *types.MsgCreateAuction {
				return &types.MsgCreateAuction{StartBlock: 0, EndBlock: 20}
			},
			types.ErrAuctionCannotStartInThePast,
		},
		{
			"start block too far away",
			func() *types.MsgCreateAuction {
				start := 2 + types.DefaultMaxAuctionDelay
				return &types.MsgCreateAuction{StartBlock: start, EndBlock: start + 10}
			},
			types.ErrAuctionStartIsTooFarAway,
		},
		{
			"auction too short",
			func() *types.MsgCreateAuction {
				return &types.MsgCreateAuction{StartBlock: 10, EndBlock: 12}
			},
			types.ErrAuctionTimeTooShort,
		},
		{
			"auction too long",
			func() *types.MsgCreateAuction {
				return &types.MsgCreateAuction{StartBlock: 10, EndBlock: 11 + types.DefaultMaxAuctionDuration}
			},
			types.ErrAuctionTimeTooLong,
		},
		{
			"buy it price not above start price",
			func() *types.MsgCreateAuction {
				return &types.MsgCreateAuction{StartBlock: 10, EndBlock: 20, BuyItPrice: intPtr(50)}
			},
			types.ErrBuyItPriceTooLow,
		},
		{
			"caller does not own the nft",
			func() *types.MsgCreateAuction {
				return &types.MsgCreateAuction{Creator: suite.alice, StartBlock: 10, EndBlock: 20}
			},
			types.ErrNotTheNFTOwner,
		},
		{
			"unknown nft",
			func() *types.MsgCreateAuction {
				return &types.MsgCreateAuction{NFTID: 99, StartBlock: 10, EndBlock: 20}
			},
			nfttypes.ErrNFTNotFound,
		},
		{
			"unknown marketplace",
			func() *types.MsgCreateAuction {
				return &types.MsgCreateAuction{MarketplaceID: 99, StartBlock: 10, EndBlock: 20}
			},
			types.ErrMarketplaceNotFound,
		},
		{
			"nft is rented",
			func() *types.MsgCreateAuction {
				suite.Require().NoError(suite.keepers.NFTKeeper.SetFlag(suite.ctx, suite.nftID, nfttypes.FlagRented, true))
				return &types.MsgCreateAuction{StartBlock: 10, EndBlock: 20}
			},
			types.ErrNFTIsBusy,
		},
		{
			"nft already in an auction",
			func() *types.MsgCreateAuction {
				suite.Require().NoError(suite.createAuction(10, 20, nil))
				return &types.MsgCreateAuction{StartBlock: 10, EndBlock: 20}
			},
			types.ErrNFTAlreadyAuctioned,
		},
		{
			"parallel auction limit reached",
			func() *types.MsgCreateAuction {
				params := suite.params()
				params.ParallelAuctionLimit = 1
				suite.Require().NoError(suite.keepers.AuctionKeeper.SetParams(suite.ctx, params))

				other, err := suite.keepers.NFTKeeper.CreateNFT(suite.ctx, suite.alice, "", 0)
				suite.Require().NoError(err)
				_, err = suite.msgServer.CreateAuction(suite.ctx, &types.MsgCreateAuction{
					Creator:       suite.alice,
					NFTID:         other,
					MarketplaceID: suite.marketplaceID,
					StartBlock:    10,
					EndBlock:      20,
					StartPrice:    math.NewInt(1),
				})
				suite.Require().NoError(err)

				return &types.MsgCreateAuction{StartBlock: 10, EndBlock: 20}
			},
			types.ErrMaxAuctionReached,
		},
		{
			"valid auction",
			func() *types.MsgCreateAuction {
				return &types.MsgCreateAuction{StartBlock: 10, EndBlock: 20, BuyItPrice: intPtr(150)}
			},
			nil,
		},
	}

	for _, tc := range cases {
		suite.Run(tc.description, func() {
			suite.SetupTest()

			msg := tc.malleate()
			if msg.Creator == "" {
				msg.Creator = suite.creator
			}
			if msg.NFTID == 0 {
				msg.NFTID = suite.nftID
			}
			if msg.MarketplaceID == 0 {
				msg.MarketplaceID = suite.marketplaceID
			}
			if msg.StartPrice.IsNil() {
				msg.StartPrice = math.NewInt(50)
			}

			_, err := suite.msgServer.CreateAuction(suite.ctx, msg)
			if tc.expectedErr != nil {
				suite.Require().ErrorIs(err, tc.expectedErr)
				return
			}

			suite.Require().NoError(err)

			a, ok := suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
			suite.Require().True(ok)
			suite.Require().Equal(suite.creator, a.Creator)
			suite.Require().Equal(uint64(20), a.EndBlock)

			nft, _ := suite.keepers.NFTKeeper.GetNFT(suite.ctx, suite.nftID)
			suite.Require().True(nft.State.IsListed)
			suite.Require().Len(testutils.EventsOfType(suite.ctx, types.EventTypeAuctionCreated), 1)
			suite.requireInvariants()
		})
	}
}

func (suite *KeeperTestSuite) TestCancelAuction() {
	suite.Require().NoError(suite.createAuction(10, 20, nil))

	_, err := suite.msgServer.CancelAuction(suite.ctx, &types.MsgCancelAuction{Creator: suite.alice, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrNotTheAuctionCreator)

	_, err = suite.msgServer.CancelAuction(suite.ctx, &types.MsgCancelAuction{Creator: suite.creator, NFTID: 42})
	suite.Require().ErrorIs(err, types.ErrAuctionNotFound)

	suite.atHeight(10)
	_, err = suite.msgServer.CancelAuction(suite.ctx, &types.MsgCancelAuction{Creator: suite.creator, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrCannotCancelAuctionInProgress)

	suite.atHeight(9)
	_, err = suite.msgServer.CancelAuction(suite.ctx, &types.MsgCancelAuction{Creator: suite.creator, NFTID: suite.nftID})
	suite.Require().NoError(err)

	_, ok := suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().False(ok)
	suite.Require().Empty(suite.keepers.AuctionKeeper.GetDeadlines(suite.ctx))

	nft, _ := suite.keepers.NFTKeeper.GetNFT(suite.ctx, suite.nftID)
	suite.Require().False(nft.State.IsListed)
	suite.Require().Equal(suite.creator, nft.Owner)
}

func (suite *KeeperTestSuite) TestAddBid() {
	suite.Require().NoError(suite.createAuction(10, 20, nil))

	suite.Require().ErrorIs(suite.addBid(suite.alice, 100), types.ErrAuctionNotStarted)

	suite.atHeight(11)
	suite.Require().ErrorIs(suite.addBid(suite.creator, 100), types.ErrCannotBidOnOwnAuction)
	suite.Require().ErrorIs(suite.addBid(suite.alice, 50), types.ErrBidBelowStartPrice)

	suite.Require().NoError(suite.addBid(suite.alice, 100))
	suite.Require().ErrorIs(suite.addBid(suite.bob, 100), types.ErrBidBelowHighestBid)
	suite.Require().NoError(suite.addBid(suite.bob, 200))

	// raising a bid returns the previous one
	suite.Require().NoError(suite.addBid(suite.alice, 300))
	suite.Require().Equal(math.NewInt(700), suite.balance(suite.alice))
	suite.Require().Equal(math.NewInt(800), suite.balance(suite.bob))

	a, _ := suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().Equal([]types.Bid{
		{Bidder: suite.bob, Amount: math.NewInt(200)},
		{Bidder: suite.alice, Amount: math.NewInt(300)},
	}, a.Bidders.Bids())
	suite.Require().False(a.IsExtended)
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestAddBidEvictsLowest() {
	params := suite.params()
	params.BidderListLimit = 2
	suite.Require().NoError(suite.keepers.AuctionKeeper.SetParams(suite.ctx, params))
	suite.Require().NoError(suite.createAuction(10, 20, nil))

	suite.atHeight(11)
	suite.Require().NoError(suite.addBid(suite.alice, 100))
	suite.Require().NoError(suite.addBid(suite.bob, 200))
	suite.Require().NoError(suite.addBid(suite.carol, 300))

	suite.Require().Equal(math.NewInt(1_000), suite.balance(suite.alice))
	suite.Require().Len(testutils.EventsOfType(suite.ctx, types.EventTypeBidDropped), 1)

	a, _ := suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().Equal(2, a.Bidders.Len())
	_, ok := a.Bidders.FindBid(suite.alice)
	suite.Require().False(ok)
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestAddBidExtendsAuction() {
	suite.Require().NoError(suite.createAuction(10, 20, nil))

	_, err := suite.msgServer.EndAuction(suite.ctx, &types.MsgEndAuction{Creator: suite.creator, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrAuctionNotExtended)

	suite.atHeight(18)
	suite.Require().NoError(suite.addBid(suite.alice, 100))

	a, _ := suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().True(a.IsExtended)
	suite.Require().Equal(uint64(23), a.EndBlock)
	suite.Require().Len(testutils.EventsOfType(suite.ctx, types.EventTypeAuctionExtended), 1)
	suite.requireInvariants()

	suite.atHeight(20)
	suite.keepers.AuctionKeeper.BeginBlocker(suite.ctx)
	_, ok := suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().True(ok)

	// bids cannot be pulled during the ending period
	suite.atHeight(21)
	_, err = suite.msgServer.RemoveBid(suite.ctx, &types.MsgRemoveBid{Bidder: suite.alice, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrCannotRemoveBidAtEndOfAuction)

	_, err = suite.msgServer.EndAuction(suite.ctx, &types.MsgEndAuction{Creator: suite.alice, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrNotTheAuctionCreator)

	_, err = suite.msgServer.EndAuction(suite.ctx, &types.MsgEndAuction{Creator: suite.creator, NFTID: suite.nftID})
	suite.Require().NoError(err)

	nft, _ := suite.keepers.NFTKeeper.GetNFT(suite.ctx, suite.nftID)
	suite.Require().Equal(suite.alice, nft.Owner)
	suite.Require().Empty(suite.keepers.AuctionKeeper.GetDeadlines(suite.ctx))
}

func (suite *KeeperTestSuite) TestRemoveBid() {
	suite.Require().NoError(suite.createAuction(10, 20, nil))

	suite.atHeight(12)
	suite.Require().NoError(suite.addBid(suite.bob, 200))

	_, err := suite.msgServer.RemoveBid(suite.ctx, &types.MsgRemoveBid{Bidder: suite.alice, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrBidNotFound)

	_, err = suite.msgServer.RemoveBid(suite.ctx, &types.MsgRemoveBid{Bidder: suite.bob, NFTID: suite.nftID})
	suite.Require().NoError(err)
	suite.Require().Equal(math.NewInt(1_000), suite.balance(suite.bob))

	a, _ := suite.keepers.AuctionKeeper.GetAuction(suite.ctx, suite.nftID)
	suite.Require().Zero(a.Bidders.Len())
	suite.requireInvariants()
}

// The escrow pools the bids of every auction, so a refund that leaves it
// below the existential deposit must not reap it.
func (suite *KeeperTestSuite) TestRemoveBidKeepsPooledEscrow() {
	suite.Require().NoError(suite.keepers.BankKeeper.SetParams(suite.ctx, balancestypes.NewParams(math.NewInt(10))))

	suite.Require().NoError(suite.createAuction(10, 20, nil))
	other, err := suite.keepers.NFTKeeper.CreateNFT(suite.ctx, suite.creator, "", 0)
	suite.Require().NoError(err)
	_, err = suite.msgServer.CreateAuction(suite.ctx, &types.MsgCreateAuction{
		Creator:       suite.creator,
		NFTID:         other,
		MarketplaceID: suite.marketplaceID,
		StartBlock:    10,
		EndBlock:      20,
		StartPrice:    math.NewInt(1),
	})
	suite.Require().NoError(err)

	suite.atHeight(12)
	suite.Require().NoError(suite.addBid(suite.alice, 100))
	_, err = suite.msgServer.AddBid(suite.ctx, &types.MsgAddBid{Bidder: suite.bob, NFTID: other, Amount: math.NewInt(5)})
	suite.Require().NoError(err)

	escrow := types.ModuleAddress.String()
	suite.Require().Equal(math.NewInt(105), suite.balance(escrow))

	_, err = suite.msgServer.RemoveBid(suite.ctx, &types.MsgRemoveBid{Bidder: suite.alice, NFTID: suite.nftID})
	suite.Require().NoError(err)
	suite.Require().Equal(math.NewInt(5), suite.balance(escrow))
	suite.Require().Empty(testutils.EventsOfType(suite.ctx, balancestypes.EventTypeDustBurned))

	_, err = suite.msgServer.RemoveBid(suite.ctx, &types.MsgRemoveBid{Bidder: suite.bob, NFTID: other})
	suite.Require().NoError(err)
	suite.Require().True(suite.balance(escrow).IsZero())
	suite.Require().Equal(math.NewInt(1_000), suite.balance(suite.alice))
	suite.Require().Equal(math.NewInt(1_000), suite.balance(suite.bob))
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestBuyItNow() {
	suite.Require().NoError(suite.createAuction(10, 20, intPtr(150)))

	_, err := suite.msgServer.BuyItNow(suite.ctx, &types.MsgBuyItNow{Buyer: suite.bob, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrAuctionNotStarted)

	suite.atHeight(11)
	suite.Require().NoError(suite.addBid(suite.alice, 100))

	_, err = suite.msgServer.BuyItNow(suite.ctx, &types.MsgBuyItNow{Buyer: suite.creator, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrCannotBidOnOwnAuction)

	_, err = suite.msgServer.BuyItNow(suite.ctx, &types.MsgBuyItNow{Buyer: suite.bob, NFTID: suite.nftID})
	suite.Require().NoError(err)

	// commission 15, royalty 10% of 135 truncated to 13, creator keeps the rest
	suite.Require().Equal(math.NewInt(1_000), suite.balance(suite.alice))
	suite.Require().Equal(math.NewInt(850), suite.balance(suite.bob))
	suite.Require().Equal(math.NewInt(15), suite.balance(suite.marketOwner))
	suite.Require().Equal(math.NewInt(13), suite.balance(suite.artist))
	suite.Require().Equal(math.NewInt(122), suite.balance(suite.creator))
	suite.Require().True(suite.balance(types.ModuleAddress.String()).IsZero())

	nft, _ := suite.keepers.NFTKeeper.GetNFT(suite.ctx, suite.nftID)
	suite.Require().Equal(suite.bob, nft.Owner)
	suite.Require().False(nft.State.IsListed)
	suite.Require().Empty(suite.keepers.AuctionKeeper.GetAuctions(suite.ctx))
	suite.Require().Empty(suite.keepers.AuctionKeeper.GetDeadlines(suite.ctx))
}

func (suite *KeeperTestSuite) TestBuyItNowRejected() {
	suite.Require().NoError(suite.createAuction(10, 20, nil))
	suite.atHeight(11)

	_, err := suite.msgServer.BuyItNow(suite.ctx, &types.MsgBuyItNow{Buyer: suite.bob, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrBuyItNowNotSupported)

	suite.SetupTest()
	suite.Require().NoError(suite.createAuction(10, 20, intPtr(150)))
	suite.atHeight(11)
	suite.Require().NoError(suite.addBid(suite.carol, 150))

	_, err = suite.msgServer.BuyItNow(suite.ctx, &types.MsgBuyItNow{Buyer: suite.bob, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrBidAboveBuyItPrice)
}

func (suite *KeeperTestSuite) TestClaim() {
	_, err := suite.msgServer.Claim(suite.ctx, &types.MsgClaim{Claimer: suite.alice})
	suite.Require().ErrorIs(err, types.ErrClaimNotFound)
}

func (suite *KeeperTestSuite) TestUpdateParams() {
	params := types.DefaultParams()
	params.BidderListLimit = 3

	_, err := suite.msgServer.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: suite.alice, Params: params})
	suite.Require().ErrorIs(err, sdkerrors.ErrUnauthorized)

	_, err = suite.msgServer.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: testkeeper.Authority, Params: params})
	suite.Require().NoError(err)
	suite.Require().Equal(params, suite.params())
}
