package auction

import (
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/auction/keeper"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
)

var (
	_ timedtypes.AppModule       = AppModule{}
	_ timedtypes.HasBeginBlocker = AppModule{}
	_ timedtypes.HasInvariants   = AppModule{}
)

// ConsensusVersion defines the current x/auction module consensus version.
const ConsensusVersion = 1

type AppModule struct {
	keeper   *keeper.Keeper
	storeKey *storetypes.KVStoreKey
}

// NewAppModule creates a new AppModule object.
func NewAppModule(keeper *keeper.Keeper, storeKey *storetypes.KVStoreKey) AppModule {
	return AppModule{keeper: keeper, storeKey: storeKey}
}

// Name returns the auction module's name.
func (AppModule) Name() string {
	return types.ModuleName
}

// StoreKey returns the key of the auction store.
func (am AppModule) StoreKey() *storetypes.KVStoreKey {
	return am.storeKey
}

// ConsensusVersion returns the version of the module's state layout.
func (AppModule) ConsensusVersion() uint64 { return ConsensusVersion }

// DefaultGenesis returns default genesis state as raw bytes for the auction module.
func (AppModule) DefaultGenesis() json.RawMessage {
	return timedtypes.MustMarshalJSON(types.DefaultGenesisState())
}

// ValidateGenesis performs genesis state validation for the auction module.
func (AppModule) ValidateGenesis(bz json.RawMessage) error {
	var gs types.GenesisState
	return timedtypes.UnmarshalGenesis(types.ModuleName, bz, &gs)
}

// InitGenesis performs the module's genesis initialization for the auction
// module.
func (am AppModule) InitGenesis(ctx sdk.Context, bz json.RawMessage) error {
	var gs types.GenesisState
	if err := timedtypes.UnmarshalGenesis(types.ModuleName, bz, &gs); err != nil {
		return err
	}

	am.keeper.InitGenesis(ctx, gs)
	return nil
}

// ExportGenesis returns the auction module's exported genesis state as raw
// JSON bytes.
func (am AppModule) ExportGenesis(ctx sdk.Context) (json.RawMessage, error) {
	return json.Marshal(am.keeper.ExportGenesis(ctx))
}

// RegisterMsgs registers the auction messages with the router.
func (am AppModule) RegisterMsgs(router *timedtypes.Router) {
	srv := keeper.NewMsgServerImpl(am.keeper)

	router.Register(types.TypeMsgUpdateParams, func() timedtypes.Msg { return &types.MsgUpdateParams{} }, timedtypes.NewHandler(srv.UpdateParams))
	router.Register(types.TypeMsgCreateAuction, func() timedtypes.Msg { return &types.MsgCreateAuction{} }, timedtypes.NewHandler(srv.CreateAuction))
	router.Register(types.TypeMsgCancelAuction, func() timedtypes.Msg { return &types.MsgCancelAuction{} }, timedtypes.NewHandler(srv.CancelAuction))
	router.Register(types.TypeMsgEndAuction, func() timedtypes.Msg { return &types.MsgEndAuction{} }, timedtypes.NewHandler(srv.EndAuction))
	router.Register(types.TypeMsgAddBid, func() timedtypes.Msg { return &types.MsgAddBid{} }, timedtypes.NewHandler(srv.AddBid))
	router.Register(types.TypeMsgRemoveBid, func() timedtypes.Msg { return &types.MsgRemoveBid{} }, timedtypes.NewHandler(srv.RemoveBid))
	router.Register(types.TypeMsgBuyItNow, func() timedtypes.Msg { return &types.MsgBuyItNow{} }, timedtypes.NewHandler(srv.BuyItNow))
	router.Register(types.TypeMsgClaim, func() timedtypes.Msg { return &types.MsgClaim{} }, timedtypes.NewHandler(srv.Claim))
}

// BeginBlock resolves the auctions that reached their end block.
func (am AppModule) BeginBlock(ctx sdk.Context) {
	am.keeper.BeginBlocker(ctx)
}

// Invariant returns the auction module invariants.
func (am AppModule) Invariant() sdk.Invariant {
	return keeper.AllInvariants(am.keeper)
}
