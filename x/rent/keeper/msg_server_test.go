package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/tempo-labs/timed-contracts/testutils"
	testkeeper "github.com/tempo-labs/timed-contracts/testutils/keeper"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

func (suite *KeeperTestSuite) TestCreateContractValidation() {
	testCases := []struct {
		name        string
		malleate    func(msg *types.MsgCreateContract)
		expectedErr error
	}{
		{
			name:        "nft does not exist",
			malleate:    func(msg *types.MsgCreateContract) { msg.NFTID = 99 },
			expectedErr: nfttypes.ErrNFTNotFound,
		},
		{
			name:        "not the owner",
			malleate:    func(msg *types.MsgCreateContract) { msg.Renter = suite.bob },
			expectedErr: types.ErrNotTheNFTOwner,
		},
		{
			name: "allow list too long",
			malleate: func(msg *types.MsgCreateContract) {
				msg.AcceptanceType = types.AutoAcceptance(suite.alice, suite.bob, testutils.Address("carol"))
			},
			expectedErr: types.ErrAllowListTooLong,
		},
		{
			name:        "rent fee nft does not exist",
			malleate:    func(msg *types.MsgCreateContract) { msg.RentFee = types.NFTRentFee(42) },
			expectedErr: types.ErrInvalidFee,
		},
		{
			name: "renter cannot afford its cancellation fee",
			malleate: func(msg *types.MsgCreateContract) {
				msg.RenterCancellationFee = types.FixedCancellationFee(math.NewInt(5_000))
			},
			expectedErr: balancestypes.ErrInsufficientBalance,
		},
		{
			name: "cancellation fee nft not owned",
			malleate: func(msg *types.MsgCreateContract) {
				msg.RenterCancellationFee = types.NFTCancellationFee(suite.feeNFTID)
			},
			expectedErr: types.ErrFeeNFTNotOwned,
		},
		{
			name: "subscription paid with an nft",
			malleate: func(msg *types.MsgCreateContract) {
				msg.Duration = types.SubscriptionDuration(5, 0, false)
				msg.RentFee = types.NFTRentFee(suite.feeNFTID)
			},
			expectedErr: types.ErrNFTFeeOnSubscription,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			msg := suite.createMsg(types.FixedDuration(100))
			tc.malleate(msg)

			err := timedtypes.Branch(suite.ctx, func(ctx sdk.Context) error {
				_, err := suite.msgServer.CreateContract(ctx, msg)
				return err
			})
			suite.Require().ErrorIs(err, tc.expectedErr)
			suite.Require().Empty(suite.keepers.RentKeeper.GetContracts(suite.ctx))
			suite.Require().False(suite.nft(suite.nftID).State.IsRented)
		})
	}
}

func (suite *KeeperTestSuite) TestCreateContract() {
	msg := suite.createMsg(types.FixedDuration(100))
	msg.RenterCancellationFee = types.FixedCancellationFee(math.NewInt(20))
	suite.create(msg)

	c, ok := suite.keepers.RentKeeper.GetContract(suite.ctx, suite.nftID)
	suite.Require().True(ok)
	suite.Require().False(c.HasStarted())
	suite.Require().Equal(uint64(1), c.CreationBlock)
	suite.Require().True(suite.nft(suite.nftID).State.IsRented)
	suite.Require().Equal(math.NewInt(980), suite.balance(suite.renter))
	suite.Require().Equal(math.NewInt(20), suite.balance(types.ModuleAddress.String()))

	queue := suite.keepers.RentKeeper.GetAvailableQueue(suite.ctx)
	suite.Require().Len(queue, 1)
	suite.Require().Equal(uint64(11), queue[0].DueAt)

	suite.Require().Len(testutils.EventsOfType(suite.ctx, types.EventTypeContractCreated), 1)
	suite.requireInvariants()

	// the nft is now rented and cannot back a second contract
	_, err := suite.msgServer.CreateContract(suite.ctx, msg)
	suite.Require().ErrorIs(err, types.ErrContractAlreadyExists)
}

func (suite *KeeperTestSuite) TestCreateContractBusyNFT() {
	suite.Require().NoError(suite.keepers.NFTKeeper.SetFlag(suite.ctx, suite.nftID, nfttypes.FlagListed, true))

	_, err := suite.msgServer.CreateContract(suite.ctx, suite.createMsg(types.FixedDuration(100)))
	suite.Require().ErrorIs(err, types.ErrNFTIsBusy)
}

func (suite *KeeperTestSuite) TestCancelContract() {
	msg := suite.createMsg(types.FixedDuration(100))
	msg.RenterCancellationFee = types.FixedCancellationFee(math.NewInt(20))
	suite.create(msg)

	_, err := suite.msgServer.CancelContract(suite.ctx, &types.MsgCancelContract{Renter: suite.bob, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrNotTheRenter)

	_, err = suite.msgServer.CancelContract(suite.ctx, &types.MsgCancelContract{Renter: suite.renter, NFTID: suite.nftID})
	suite.Require().NoError(err)

	_, ok := suite.keepers.RentKeeper.GetContract(suite.ctx, suite.nftID)
	suite.Require().False(ok)
	suite.Require().Empty(suite.keepers.RentKeeper.GetAvailableQueue(suite.ctx))
	suite.Require().False(suite.nft(suite.nftID).State.IsRented)
	suite.Require().Equal(math.NewInt(1_000), suite.balance(suite.renter))
	suite.Require().Len(testutils.EventsOfType(suite.ctx, types.EventTypeContractCancelled), 1)
}

func (suite *KeeperTestSuite) TestCancelStartedContract() {
	suite.create(suite.createMsg(types.FixedDuration(100)))
	_, err := suite.rent(suite.alice)
	suite.Require().NoError(err)

	_, err = suite.msgServer.CancelContract(suite.ctx, &types.MsgCancelContract{Renter: suite.renter, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrContractHasStarted)
}

func (suite *KeeperTestSuite) TestRentAutoAcceptance() {
	msg := suite.createMsg(types.FixedDuration(100))
	msg.RenteeCancellationFee = types.FixedCancellationFee(math.NewInt(30))
	msg.AcceptanceType = types.AutoAcceptance(suite.alice)
	suite.create(msg)

	_, err := suite.rent(suite.renter)
	suite.Require().ErrorIs(err, types.ErrCannotRentOwnContract)

	_, err = suite.rent(suite.bob)
	suite.Require().ErrorIs(err, types.ErrNotAuthorizedForContract)

	suite.atHeight(4)
	started, err := suite.rent(suite.alice)
	suite.Require().NoError(err)
	suite.Require().True(started)

	c, _ := suite.keepers.RentKeeper.GetContract(suite.ctx, suite.nftID)
	suite.Require().Equal(suite.alice, c.Rentee)
	suite.Require().Equal(uint64(4), *c.StartBlock)
	suite.Require().True(c.TermsAccepted)

	suite.Require().Equal(math.NewInt(960), suite.balance(suite.alice))
	suite.Require().Equal(math.NewInt(1_010), suite.balance(suite.renter))
	suite.Require().Equal(math.NewInt(30), suite.balance(types.ModuleAddress.String()))

	suite.Require().Empty(suite.keepers.RentKeeper.GetAvailableQueue(suite.ctx))
	fixed := suite.keepers.RentKeeper.GetFixedQueue(suite.ctx)
	suite.Require().Len(fixed, 1)
	suite.Require().Equal(uint64(104), fixed[0].DueAt)

	_, err = suite.rent(suite.bob)
	suite.Require().ErrorIs(err, types.ErrContractHasStarted)
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestRentWithNFTFees() {
	bobNFT, err := suite.keepers.NFTKeeper.CreateNFT(suite.ctx, suite.bob, "ipfs://bob", 0)
	suite.Require().NoError(err)

	msg := suite.createMsg(types.FixedDuration(100))
	msg.RentFee = types.NFTRentFee(suite.feeNFTID)
	msg.RenteeCancellationFee = types.NFTCancellationFee(bobNFT)
	suite.create(msg)

	// alice owns the rent fee nft but not the cancellation fee nft
	_, err = suite.rent(suite.alice)
	suite.Require().ErrorIs(err, types.ErrFeeNFTNotOwned)

	suite.Require().NoError(suite.keepers.NFTKeeper.SetOwner(suite.ctx, bobNFT, suite.alice))
	_, err = suite.rent(suite.alice)
	suite.Require().NoError(err)

	suite.Require().Equal(suite.renter, suite.nft(suite.feeNFTID).Owner)
	suite.Require().Equal(types.ModuleAddress.String(), suite.nft(bobNFT).Owner)

	// the fixed end hands the cancellation fee nft back
	suite.beginBlock(101)
	suite.Require().Equal(suite.alice, suite.nft(bobNFT).Owner)
	suite.Require().False(suite.nft(suite.nftID).State.IsRented)
}

func (suite *KeeperTestSuite) TestRentFeeNFTIsBusy() {
	msg := suite.createMsg(types.FixedDuration(100))
	msg.RentFee = types.NFTRentFee(suite.feeNFTID)
	suite.create(msg)

	suite.Require().NoError(suite.keepers.NFTKeeper.SetFlag(suite.ctx, suite.feeNFTID, nfttypes.FlagSoulbound, true))

	_, err := suite.rent(suite.alice)
	suite.Require().ErrorIs(err, types.ErrFeeNFTIsBusy)
}

func (suite *KeeperTestSuite) TestOffers() {
	msg := suite.createMsg(types.FixedDuration(100))
	msg.AcceptanceType = types.ManualAcceptance()
	suite.create(msg)

	carol := testutils.Address("carol")
	suite.keepers.BankKeeper.SetBalance(suite.ctx, carol, math.NewInt(1_000))

	started, err := suite.rent(suite.alice)
	suite.Require().NoError(err)
	suite.Require().False(started)

	_, err = suite.rent(suite.alice)
	suite.Require().ErrorIs(err, types.ErrOfferAlreadyExists)

	_, err = suite.rent(suite.bob)
	suite.Require().NoError(err)

	_, err = suite.rent(carol)
	suite.Require().ErrorIs(err, types.ErrMaxOfferReached)

	suite.Require().Equal([]string{suite.alice, suite.bob}, suite.keepers.RentKeeper.GetOffers(suite.ctx, suite.nftID))
	suite.Require().Len(testutils.EventsOfType(suite.ctx, types.EventTypeContractOffered), 2)

	_, err = suite.msgServer.RetractRentOffer(suite.ctx, &types.MsgRetractRentOffer{Rentee: suite.alice, NFTID: suite.nftID})
	suite.Require().NoError(err)
	_, err = suite.msgServer.RetractRentOffer(suite.ctx, &types.MsgRetractRentOffer{Rentee: suite.alice, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrOfferNotFound)

	_, err = suite.msgServer.AcceptRentOffer(suite.ctx, &types.MsgAcceptRentOffer{Renter: suite.renter, NFTID: suite.nftID, Rentee: suite.alice})
	suite.Require().ErrorIs(err, types.ErrOfferNotFound)

	_, err = suite.msgServer.AcceptRentOffer(suite.ctx, &types.MsgAcceptRentOffer{Renter: suite.bob, NFTID: suite.nftID, Rentee: suite.bob})
	suite.Require().ErrorIs(err, types.ErrNotTheRenter)

	_, err = suite.msgServer.AcceptRentOffer(suite.ctx, &types.MsgAcceptRentOffer{Renter: suite.renter, NFTID: suite.nftID, Rentee: suite.bob})
	suite.Require().NoError(err)

	c, _ := suite.keepers.RentKeeper.GetContract(suite.ctx, suite.nftID)
	suite.Require().Equal(suite.bob, c.Rentee)
	suite.Require().Empty(suite.keepers.RentKeeper.GetOffers(suite.ctx, suite.nftID))
	suite.Require().Equal(math.NewInt(990), suite.balance(suite.bob))
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestAcceptOfferOnAutoContract() {
	suite.create(suite.createMsg(types.FixedDuration(100)))

	_, err := suite.msgServer.AcceptRentOffer(suite.ctx, &types.MsgAcceptRentOffer{Renter: suite.renter, NFTID: suite.nftID, Rentee: suite.alice})
	suite.Require().ErrorIs(err, types.ErrManualAcceptanceOnly)
}

func (suite *KeeperTestSuite) TestRevokeFlexibleFee() {
	msg := suite.createMsg(types.FixedDuration(100))
	msg.RenterCancellationFee = types.FixedCancellationFee(math.NewInt(20))
	msg.RenteeCancellationFee = types.FlexibleCancellationFee(math.NewInt(100))
	suite.create(msg)

	_, err := suite.rent(suite.alice)
	suite.Require().NoError(err)
	suite.Require().Equal(math.NewInt(890), suite.balance(suite.alice))

	// half of the contract is left, so half of the fee goes to the renter
	suite.atHeight(51)
	_, err = suite.msgServer.RevokeContract(suite.ctx, &types.MsgRevokeContract{Revoker: suite.alice, NFTID: suite.nftID})
	suite.Require().NoError(err)

	suite.Require().Equal(math.NewInt(940), suite.balance(suite.alice))
	suite.Require().Equal(math.NewInt(1_060), suite.balance(suite.renter))
	suite.Require().True(suite.balance(types.ModuleAddress.String()).IsZero())

	_, ok := suite.keepers.RentKeeper.GetContract(suite.ctx, suite.nftID)
	suite.Require().False(ok)
	suite.Require().Empty(suite.keepers.RentKeeper.GetFixedQueue(suite.ctx))
	suite.Require().False(suite.nft(suite.nftID).State.IsRented)

	revoked := testutils.EventsOfType(suite.ctx, types.EventTypeContractRevoked)
	suite.Require().Len(revoked, 1)
	by, _ := testutils.Attribute(revoked[0], types.AttributeKeyRevokedBy)
	suite.Require().Equal(suite.alice, by)
}

func (suite *KeeperTestSuite) TestRevokeByRenter() {
	msg := suite.createMsg(types.FixedDuration(100))
	msg.RenterCancellationFee = types.FixedCancellationFee(math.NewInt(20))
	msg.RenteeCancellationFee = types.FixedCancellationFee(math.NewInt(30))
	suite.create(msg)

	_, err := suite.msgServer.RevokeContract(suite.ctx, &types.MsgRevokeContract{Revoker: suite.renter, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrContractHasNotStarted)

	_, err = suite.rent(suite.alice)
	suite.Require().NoError(err)

	_, err = suite.msgServer.RevokeContract(suite.ctx, &types.MsgRevokeContract{Revoker: suite.bob, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrNotAParty)

	_, err = suite.msgServer.RevokeContract(suite.ctx, &types.MsgRevokeContract{Revoker: suite.renter, NFTID: suite.nftID})
	suite.Require().ErrorIs(err, types.ErrRenterCannotRevoke)
}

func (suite *KeeperTestSuite) TestRevokeByRenterPaysRentee() {
	msg := suite.createMsg(types.FixedDuration(100))
	msg.RenterCanRevoke = true
	msg.RenterCancellationFee = types.FixedCancellationFee(math.NewInt(20))
	msg.RenteeCancellationFee = types.FixedCancellationFee(math.NewInt(30))
	suite.create(msg)

	_, err := suite.rent(suite.alice)
	suite.Require().NoError(err)

	_, err = suite.msgServer.RevokeContract(suite.ctx, &types.MsgRevokeContract{Revoker: suite.renter, NFTID: suite.nftID})
	suite.Require().NoError(err)

	// alice paid 10 rent, gets her 30 back plus the renter's 20
	suite.Require().Equal(math.NewInt(1_010), suite.balance(suite.alice))
	suite.Require().Equal(math.NewInt(990), suite.balance(suite.renter))
}

func (suite *KeeperTestSuite) TestSubscriptionTerms() {
	suite.create(suite.createMsg(types.SubscriptionDuration(2, 0, true)))
	_, err := suite.rent(suite.alice)
	suite.Require().NoError(err)

	change := &types.MsgChangeSubscriptionTerms{
		Renter:     suite.renter,
		NFTID:      suite.nftID,
		Period:     4,
		RentFee:    math.NewInt(25),
		Changeable: true,
	}
	_, err = suite.msgServer.ChangeSubscriptionTerms(suite.ctx, &types.MsgChangeSubscriptionTerms{Renter: suite.alice, NFTID: suite.nftID, Period: 4, RentFee: math.NewInt(25)})
	suite.Require().ErrorIs(err, types.ErrNotTheRenter)

	_, err = suite.msgServer.ChangeSubscriptionTerms(suite.ctx, change)
	suite.Require().NoError(err)

	c, _ := suite.keepers.RentKeeper.GetContract(suite.ctx, suite.nftID)
	suite.Require().False(c.TermsAccepted)
	suite.Require().Equal(uint64(4), c.Duration.Period)

	accept := &types.MsgAcceptSubscriptionTerms{Rentee: suite.alice, NFTID: suite.nftID, Period: 4, RentFee: math.NewInt(20)}
	_, err = suite.msgServer.AcceptSubscriptionTerms(suite.ctx, accept)
	suite.Require().ErrorIs(err, types.ErrTermsMismatch)

	accept.RentFee = math.NewInt(25)
	bobAccept := *accept
	bobAccept.Rentee = suite.bob
	_, err = suite.msgServer.AcceptSubscriptionTerms(suite.ctx, &bobAccept)
	suite.Require().ErrorIs(err, types.ErrNotTheRentee)

	_, err = suite.msgServer.AcceptSubscriptionTerms(suite.ctx, accept)
	suite.Require().NoError(err)
	_, err = suite.msgServer.AcceptSubscriptionTerms(suite.ctx, accept)
	suite.Require().ErrorIs(err, types.ErrTermsAlreadyAccepted)

	// the renewal already scheduled at block 3 charges the new fee
	suite.beginBlock(3)
	suite.Require().Equal(math.NewInt(1_000-10-25), suite.balance(suite.alice))
	due := suite.keepers.RentKeeper.GetSubscriptionQueue(suite.ctx)
	suite.Require().Len(due, 1)
	suite.Require().Equal(uint64(7), due[0].DueAt)
}

func (suite *KeeperTestSuite) TestSubscriptionTermsNotChangeable() {
	suite.create(suite.createMsg(types.SubscriptionDuration(2, 0, false)))
	_, err := suite.rent(suite.alice)
	suite.Require().NoError(err)

	_, err = suite.msgServer.ChangeSubscriptionTerms(suite.ctx, &types.MsgChangeSubscriptionTerms{
		Renter:  suite.renter,
		NFTID:   suite.nftID,
		Period:  4,
		RentFee: math.NewInt(25),
	})
	suite.Require().ErrorIs(err, types.ErrContractTermsNotChangeable)
}

func (suite *KeeperTestSuite) TestUpdateParams() {
	params := types.DefaultParams()
	params.AccountSizeLimit = 7

	_, err := suite.msgServer.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: suite.alice, Params: params})
	suite.Require().ErrorIs(err, sdkerrors.ErrUnauthorized)

	_, err = suite.msgServer.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: testkeeper.Authority, Params: params})
	suite.Require().NoError(err)
	suite.Require().Equal(params, suite.params())

	params.ContractExpirationDuration = 0
	_, err = suite.msgServer.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: testkeeper.Authority, Params: params})
	suite.Require().ErrorIs(err, types.ErrInvalidParams)
}
