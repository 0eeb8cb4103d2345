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
	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

func (suite *KeeperTestSuite) TestSetTransmissionProtocolValidation() {
	testCases := []struct {
		name        string
		malleate    func(msg *types.MsgSetTransmissionProtocol)
		expectedErr error
	}{
		{
			name:        "nft does not exist",
			malleate:    func(msg *types.MsgSetTransmissionProtocol) { msg.NFTID = 99 },
			expectedErr: nfttypes.ErrNFTNotFound,
		},
		{
			name:        "not the owner",
			malleate:    func(msg *types.MsgSetTransmissionProtocol) { msg.Owner = suite.bob },
			expectedErr: types.ErrNotTheNFTOwner,
		},
		{
			name:        "recipient is the owner",
			malleate:    func(msg *types.MsgSetTransmissionProtocol) { msg.Recipient = suite.owner },
			expectedErr: types.ErrInvalidRecipient,
		},
		{
			name: "nft is listed",
			malleate: func(*types.MsgSetTransmissionProtocol) {
				suite.Require().NoError(suite.keepers.NFTKeeper.SetFlag(suite.ctx, suite.nftID, nfttypes.FlagListed, true))
			},
			expectedErr: types.ErrNFTIsBusy,
		},
		{
			name:        "block in the past",
			malleate:    func(msg *types.MsgSetTransmissionProtocol) { msg.Protocol = types.AtBlock(1) },
			expectedErr: types.ErrTransmissionBlockInPast,
		},
		{
			name:        "block too far away",
			malleate:    func(msg *types.MsgSetTransmissionProtocol) { msg.Protocol = types.AtBlock(102) },
			expectedErr: types.ErrTransmissionTooFarAway,
		},
		{
			name: "consent list too long",
			malleate: func(msg *types.MsgSetTransmissionProtocol) {
				msg.Protocol = types.OnConsent([]string{suite.alice, suite.bob, testutils.Address("carol")}, 1)
			},
			expectedErr: types.ErrConsentListTooLong,
		},
		{
			name: "threshold above the consent list",
			malleate: func(msg *types.MsgSetTransmissionProtocol) {
				msg.Protocol = types.OnConsent([]string{suite.alice}, 2)
			},
			expectedErr: types.ErrInvalidThreshold,
		},
		{
			name:        "cancellation after the transmission block",
			malleate:    func(msg *types.MsgSetTransmissionProtocol) { msg.Cancellation = types.CancellableUntil(11) },
			expectedErr: types.ErrInvalidCancellationPeriod,
		},
		{
			name:        "cancellation already over",
			malleate:    func(msg *types.MsgSetTransmissionProtocol) { msg.Cancellation = types.CancellableUntil(1) },
			expectedErr: types.ErrInvalidCancellationPeriod,
		},
		{
			name: "owner cannot pay the fee",
			malleate: func(*types.MsgSetTransmissionProtocol) {
				suite.keepers.BankKeeper.SetBalance(suite.ctx, suite.owner, math.NewInt(5))
			},
			expectedErr: balancestypes.ErrInsufficientBalance,
		},
		{
			name: "queue is full",
			malleate: func(*types.MsgSetTransmissionProtocol) {
				params := suite.params()
				params.SimultaneousTransmissionLimit = 1
				suite.Require().NoError(suite.keepers.TransmissionKeeper.SetParams(suite.ctx, params))

				other, err := suite.keepers.NFTKeeper.CreateNFT(suite.ctx, suite.owner, "", timedtypes.PermillFromPercent(0))
				suite.Require().NoError(err)
				msg := suite.setMsg(types.AtBlock(50))
				msg.NFTID = other
				suite.set(msg)
			},
			expectedErr: types.ErrSimultaneousTransmissionLimitReached,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			msg := suite.setMsg(types.AtBlock(10))
			tc.malleate(msg)
			balance := suite.balance(suite.owner)

			err := timedtypes.Branch(suite.ctx, func(ctx sdk.Context) error {
				_, err := suite.msgServer.SetTransmissionProtocol(ctx, msg)
				return err
			})
			suite.Require().ErrorIs(err, tc.expectedErr)

			_, ok := suite.keepers.TransmissionKeeper.GetTransmission(suite.ctx, suite.nftID)
			suite.Require().False(ok)
			suite.Require().False(suite.nft(suite.nftID).State.IsTransmission)
			suite.Require().Equal(balance, suite.balance(suite.owner))
			suite.requireInvariants()
		})
	}
}

func (suite *KeeperTestSuite) TestSetTransmissionProtocol() {
	suite.set(suite.setMsg(types.AtBlock(10)))

	suite.Require().True(suite.nft(suite.nftID).State.IsTransmission)
	suite.Require().Equal(math.NewInt(990), suite.balance(suite.owner))
	suite.Require().Equal(math.NewInt(10), suite.balance(types.ModuleAddress.String()))

	queue := suite.keepers.TransmissionKeeper.GetQueue(suite.ctx)
	suite.Require().Len(queue, 1)
	suite.Require().Equal(uint64(10), queue[0].DueAt)

	events := testutils.EventsOfType(suite.ctx, types.EventTypeTransmissionSet)
	suite.Require().Len(events, 1)
	fee, _ := testutils.Attribute(events[0], types.AttributeKeyFee)
	suite.Require().Equal("10", fee)

	// a second protocol on the same nft is refused by the busy check
	_, err := suite.msgServer.SetTransmissionProtocol(suite.ctx, suite.setMsg(types.AtBlock(20)))
	suite.Require().ErrorIs(err, types.ErrNFTIsBusy)
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestRemoveTransmissionProtocol() {
	testCases := []struct {
		name         string
		cancellation types.CancellationPeriod
		height       int64
		sender       func() string
		expectedErr  error
	}{
		{
			name:         "anytime",
			cancellation: types.CancellableAnytime(),
			height:       9,
		},
		{
			name:         "before the cancellation block",
			cancellation: types.CancellableUntil(5),
			height:       4,
		},
		{
			name:         "at the cancellation block",
			cancellation: types.CancellableUntil(5),
			height:       5,
			expectedErr:  types.ErrCancellationPeriodOver,
		},
		{
			name:         "not cancellable",
			cancellation: types.NoCancellation(),
			height:       2,
			expectedErr:  types.ErrProtocolCannotBeCancelled,
		},
		{
			name:         "not the owner",
			cancellation: types.CancellableAnytime(),
			height:       2,
			sender:       func() string { return suite.bob },
			expectedErr:  types.ErrNotTheNFTOwner,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			msg := suite.setMsg(types.AtBlock(10))
			msg.Cancellation = tc.cancellation
			suite.set(msg)

			sender := suite.owner
			if tc.sender != nil {
				sender = tc.sender()
			}

			suite.atHeight(tc.height)
			_, err := suite.msgServer.RemoveTransmissionProtocol(suite.ctx, &types.MsgRemoveTransmissionProtocol{
				Owner: sender,
				NFTID: suite.nftID,
			})

			_, exists := suite.keepers.TransmissionKeeper.GetTransmission(suite.ctx, suite.nftID)
			if tc.expectedErr != nil {
				suite.Require().ErrorIs(err, tc.expectedErr)
				suite.Require().True(exists)
				suite.Require().True(suite.nft(suite.nftID).State.IsTransmission)
			} else {
				suite.Require().NoError(err)
				suite.Require().False(exists)
				suite.Require().False(suite.nft(suite.nftID).State.IsTransmission)
				suite.Require().Empty(suite.keepers.TransmissionKeeper.GetQueue(suite.ctx))
				// the fee is not refunded
				suite.Require().Equal(math.NewInt(990), suite.balance(suite.owner))
			}
			suite.requireInvariants()
		})
	}

	_, err := suite.msgServer.RemoveTransmissionProtocol(suite.ctx, &types.MsgRemoveTransmissionProtocol{Owner: suite.owner, NFTID: 42})
	suite.Require().ErrorIs(err, types.ErrTransmissionNotFound)
}

func (suite *KeeperTestSuite) TestResetTimer() {
	msg := suite.setMsg(types.AtBlockWithReset(10))
	msg.Cancellation = types.CancellableUntil(8)
	suite.set(msg)

	reset := func(block uint64) error {
		_, err := suite.msgServer.ResetTimer(suite.ctx, &types.MsgResetTimer{Owner: suite.owner, NFTID: suite.nftID, Block: block})
		return err
	}

	suite.atHeight(6)
	suite.Require().ErrorIs(reset(6), types.ErrTransmissionBlockInPast)
	suite.Require().ErrorIs(reset(107), types.ErrTransmissionTooFarAway)
	suite.Require().ErrorIs(reset(7), types.ErrInvalidCancellationPeriod)
	suite.Require().NoError(reset(20))

	t, ok := suite.keepers.TransmissionKeeper.GetTransmission(suite.ctx, suite.nftID)
	suite.Require().True(ok)
	suite.Require().Equal(uint64(20), t.Protocol.Block)
	suite.Require().Len(testutils.EventsOfType(suite.ctx, types.EventTypeTransmissionTimerReset), 1)
	suite.requireInvariants()

	suite.beginBlock(10)
	suite.Require().Equal(suite.owner, suite.nft(suite.nftID).Owner)

	suite.beginBlock(20)
	suite.Require().Equal(suite.recipient, suite.nft(suite.nftID).Owner)
}

func (suite *KeeperTestSuite) TestResetTimerRequiresResettableProtocol() {
	suite.set(suite.setMsg(types.AtBlock(10)))

	_, err := suite.msgServer.ResetTimer(suite.ctx, &types.MsgResetTimer{Owner: suite.owner, NFTID: suite.nftID, Block: 20})
	suite.Require().ErrorIs(err, types.ErrProtocolTimerCannotBeReset)

	_, err = suite.msgServer.ResetTimer(suite.ctx, &types.MsgResetTimer{Owner: suite.bob, NFTID: suite.nftID, Block: 20})
	suite.Require().ErrorIs(err, types.ErrNotTheNFTOwner)
}

func (suite *KeeperTestSuite) TestOnConsentTransmitsAtThreshold() {
	suite.set(suite.setMsg(types.OnConsent([]string{suite.alice, suite.bob}, 2)))
	suite.Require().Equal(math.NewInt(980), suite.balance(suite.owner))
	suite.Require().Empty(suite.keepers.TransmissionKeeper.GetQueue(suite.ctx))

	_, err := suite.consent(testutils.Address("carol"))
	suite.Require().ErrorIs(err, types.ErrNotInConsentList)

	transmitted, err := suite.consent(suite.alice)
	suite.Require().NoError(err)
	suite.Require().False(transmitted)

	_, err = suite.consent(suite.alice)
	suite.Require().ErrorIs(err, types.ErrAlreadyConsented)
	suite.requireInvariants()

	transmitted, err = suite.consent(suite.bob)
	suite.Require().NoError(err)
	suite.Require().True(transmitted)

	nft := suite.nft(suite.nftID)
	suite.Require().Equal(suite.recipient, nft.Owner)
	suite.Require().False(nft.State.IsTransmission)
	suite.Require().Len(testutils.EventsOfType(suite.ctx, types.EventTypeTransmitted), 1)

	_, err = suite.consent(suite.bob)
	suite.Require().ErrorIs(err, types.ErrTransmissionNotFound)
}

func (suite *KeeperTestSuite) TestConsentNotAllowed() {
	suite.set(suite.setMsg(types.AtBlock(10)))

	_, err := suite.consent(suite.alice)
	suite.Require().ErrorIs(err, types.ErrConsentNotAllowed)
}

func (suite *KeeperTestSuite) TestUpdateParams() {
	params := types.DefaultParams()
	params.OnConsentAtBlockFee = math.NewInt(3)

	_, err := suite.msgServer.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: suite.bob, Params: params})
	suite.Require().ErrorIs(err, sdkerrors.ErrUnauthorized)

	_, err = suite.msgServer.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: testkeeper.Authority, Params: params})
	suite.Require().NoError(err)
	suite.Require().Equal(params, suite.params())

	params.MaxBlockDuration = 0
	_, err = suite.msgServer.UpdateParams(suite.ctx, &types.MsgUpdateParams{Authority: testkeeper.Authority, Params: params})
	suite.Require().ErrorIs(err, types.ErrInvalidParams)
}
