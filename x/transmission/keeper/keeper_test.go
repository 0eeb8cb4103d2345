package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	"github.com/tempo-labs/timed-contracts/testutils"
	testkeeper "github.com/tempo-labs/timed-contracts/testutils/keeper"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	"github.com/tempo-labs/timed-contracts/x/transmission/keeper"
	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

type KeeperTestSuite struct {
	suite.Suite

	ctx       sdk.Context
	keepers   testkeeper.TestKeepers
	msgServer *keeper.MsgServer

	owner     string
	recipient string
	alice     string
	bob       string
	nftID     uint32
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (suite *KeeperTestSuite) SetupTest() {
	suite.ctx = testutils.NewContext(1)
	tk, tms := testkeeper.NewTestSetup(suite.T(), suite.ctx)
	suite.keepers = tk
	suite.msgServer = tms.TransmissionMsgServer

	suite.owner = testutils.Address("owner")
	suite.recipient = testutils.Address("recipient")
	suite.alice = testutils.Address("alice")
	suite.bob = testutils.Address("bob")

	params := types.DefaultParams()
	params.MaxBlockDuration = 100
	params.MaxConsentListSize = 2
	params.AtBlockFee = math.NewInt(10)
	params.OnConsentFee = math.NewInt(20)
	suite.Require().NoError(tk.TransmissionKeeper.SetParams(suite.ctx, params))

	var err error
	suite.nftID, err = tk.NFTKeeper.CreateNFT(suite.ctx, suite.owner, "ipfs://nft", timedtypes.PermillFromPercent(0))
	suite.Require().NoError(err)

	tk.BankKeeper.SetBalance(suite.ctx, suite.owner, math.NewInt(1_000))
}

// atHeight moves to block h with a fresh event manager.
func (suite *KeeperTestSuite) atHeight(h int64) {
	suite.ctx = suite.ctx.WithBlockHeight(h).WithEventManager(sdk.NewEventManager())
}

func (suite *KeeperTestSuite) params() types.Params {
	params, err := suite.keepers.TransmissionKeeper.GetParams(suite.ctx)
	suite.Require().NoError(err)
	return params
}

func (suite *KeeperTestSuite) balance(addr string) math.Int {
	return suite.keepers.BankKeeper.FreeBalance(suite.ctx, addr)
}

func (suite *KeeperTestSuite) nft(id uint32) nfttypes.NFT {
	n, ok := suite.keepers.NFTKeeper.GetNFT(suite.ctx, id)
	suite.Require().True(ok)
	return n
}

func (suite *KeeperTestSuite) setMsg(protocol types.TransmissionProtocol) *types.MsgSetTransmissionProtocol {
	return &types.MsgSetTransmissionProtocol{
		Owner:        suite.owner,
		NFTID:        suite.nftID,
		Recipient:    suite.recipient,
		Protocol:     protocol,
		Cancellation: types.CancellableAnytime(),
	}
}

func (suite *KeeperTestSuite) set(msg *types.MsgSetTransmissionProtocol) {
	_, err := suite.msgServer.SetTransmissionProtocol(suite.ctx, msg)
	suite.Require().NoError(err)
}

func (suite *KeeperTestSuite) consent(account string) (bool, error) {
	res, err := suite.msgServer.AddConsent(suite.ctx, &types.MsgAddConsent{Account: account, NFTID: suite.nftID})
	if err != nil {
		return false, err
	}
	return res.Transmitted, nil
}

func (suite *KeeperTestSuite) beginBlock(h int64) {
	suite.atHeight(h)
	suite.keepers.TransmissionKeeper.BeginBlocker(suite.ctx)
}

func (suite *KeeperTestSuite) requireInvariants() {
	msg, broken := keeper.AllInvariants(suite.keepers.TransmissionKeeper)(suite.ctx)
	suite.Require().False(broken, msg)
}

func (suite *KeeperTestSuite) TestSetParamsChecksQueue() {
	suite.set(suite.setMsg(types.AtBlock(10)))
	other, err := suite.keepers.NFTKeeper.CreateNFT(suite.ctx, suite.owner, "ipfs://other", timedtypes.PermillFromPercent(0))
	suite.Require().NoError(err)
	msg := suite.setMsg(types.AtBlock(12))
	msg.NFTID = other
	suite.set(msg)

	// two protocols are queued
	tooSmall := suite.params()
	tooSmall.SimultaneousTransmissionLimit = 1
	suite.Require().Error(suite.keepers.TransmissionKeeper.SetParams(suite.ctx, tooSmall))

	_, err = suite.msgServer.RemoveTransmissionProtocol(suite.ctx, &types.MsgRemoveTransmissionProtocol{Owner: suite.owner, NFTID: other})
	suite.Require().NoError(err)

	params := suite.params()
	params.SimultaneousTransmissionLimit = 1
	suite.Require().NoError(suite.keepers.TransmissionKeeper.SetParams(suite.ctx, params))
	suite.Require().Len(suite.keepers.TransmissionKeeper.GetQueue(suite.ctx), 1)
	suite.requireInvariants()

	params.MaxConsentListSize = 0
	suite.Require().Error(suite.keepers.TransmissionKeeper.SetParams(suite.ctx, params))
}

func (suite *KeeperTestSuite) TestFeeCollector() {
	collector, err := suite.keepers.TransmissionKeeper.GetFeeCollector(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.ModuleAddress.String(), collector)

	params := suite.params()
	params.FeeCollector = suite.bob
	suite.Require().NoError(suite.keepers.TransmissionKeeper.SetParams(suite.ctx, params))

	suite.set(suite.setMsg(types.AtBlock(10)))
	suite.Require().Equal(math.NewInt(10), suite.balance(suite.bob))
	suite.Require().True(suite.balance(types.ModuleAddress.String()).IsZero())
}

func (suite *KeeperTestSuite) TestGenesisRoundTrip() {
	suite.set(suite.setMsg(types.OnConsentAtBlock([]string{suite.alice, suite.bob}, 2, 20)))
	_, err := suite.consent(suite.alice)
	suite.Require().NoError(err)

	other, err := suite.keepers.NFTKeeper.CreateNFT(suite.ctx, suite.owner, "ipfs://other", timedtypes.PermillFromPercent(0))
	suite.Require().NoError(err)
	msg := suite.setMsg(types.OnConsent([]string{suite.alice}, 1))
	msg.NFTID = other
	msg.Cancellation = types.CancellableUntil(5)
	suite.set(msg)

	exported := suite.keepers.TransmissionKeeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(exported.Validate())
	suite.Require().Len(exported.Transmissions, 2)
	suite.Require().Len(exported.Queue, 1)

	// a fresh context has empty stores
	ctx := testutils.NewContext(1)
	k := keeper.NewKeeper(testutils.StoreKeys[types.StoreKey], suite.keepers.BankKeeper, suite.keepers.NFTKeeper, testkeeper.Authority)
	k.InitGenesis(ctx, *exported)
	suite.Require().Equal(exported, k.ExportGenesis(ctx))

	t, ok := k.GetTransmission(ctx, suite.nftID)
	suite.Require().True(ok)
	suite.Require().Equal([]string{suite.alice}, t.Consents)
}

func (suite *KeeperTestSuite) TestCacheContextRollback() {
	cacheCtx, write := suite.ctx.CacheContext()

	_, err := suite.msgServer.SetTransmissionProtocol(cacheCtx, suite.setMsg(types.AtBlock(10)))
	suite.Require().NoError(err)
	suite.Require().Len(suite.keepers.TransmissionKeeper.GetTransmissions(cacheCtx), 1)

	// the fee and the flag stay in the cache until write
	suite.Require().Empty(suite.keepers.TransmissionKeeper.GetTransmissions(suite.ctx))
	suite.Require().Empty(suite.keepers.TransmissionKeeper.GetQueue(suite.ctx))
	suite.Require().Equal(math.NewInt(1_000), suite.balance(suite.owner))
	suite.Require().False(suite.nft(suite.nftID).State.Has(nfttypes.FlagTransmission))

	write()
	suite.Require().Len(suite.keepers.TransmissionKeeper.GetQueue(suite.ctx), 1)
	suite.Require().Equal(math.NewInt(990), suite.balance(suite.owner))
	suite.requireInvariants()
}
