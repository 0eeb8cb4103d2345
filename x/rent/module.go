package rent

import (
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/rent/keeper"
	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

var (
	_ timedtypes.AppModule       = AppModule{}
	_ timedtypes.HasBeginBlocker = AppModule{}
	_ timedtypes.HasInvariants   = AppModule{}
)

// ConsensusVersion defines the current x/rent module consensus version.
const ConsensusVersion = 1

type AppModule struct {
	keeper   *keeper.Keeper
	storeKey *storetypes.KVStoreKey
}

// NewAppModule creates a new AppModule object.
func NewAppModule(keeper *keeper.Keeper, storeKey *storetypes.KVStoreKey) AppModule {
	return AppModule{keeper: keeper, storeKey: storeKey}
}

// Name returns the rent module's name.
func (AppModule) Name() string {
	return types.ModuleName
}

// StoreKey returns the key of the rent store.
func (am AppModule) StoreKey() *storetypes.KVStoreKey {
	return am.storeKey
}

// ConsensusVersion returns the version of the module's state layout.
func (AppModule) ConsensusVersion() uint64 { return ConsensusVersion }

// DefaultGenesis returns default genesis state as raw bytes for the rent module.
func (AppModule) DefaultGenesis() json.RawMessage {
	return timedtypes.MustMarshalJSON(types.DefaultGenesisState())
}

// ValidateGenesis performs genesis state validation for the rent module.
func (AppModule) ValidateGenesis(bz json.RawMessage) error {
	var gs types.GenesisState
	return timedtypes.UnmarshalGenesis(types.ModuleName, bz, &gs)
}

// InitGenesis performs the module's genesis initialization for the rent
// module.
func (am AppModule) InitGenesis(ctx sdk.Context, bz json.RawMessage) error {
	var gs types.GenesisState
	if err := timedtypes.UnmarshalGenesis(types.ModuleName, bz, &gs); err != nil {
		return err
	}

	am.keeper.InitGenesis(ctx, gs)
	return nil
}

// ExportGenesis returns the rent module's exported genesis state as raw
// JSON bytes.
func (am AppModule) ExportGenesis(ctx sdk.Context) (json.RawMessage, error) {
	return json.Marshal(am.keeper.ExportGenesis(ctx))
}

// RegisterMsgs registers the rent messages with the router.
func (am AppModule) RegisterMsgs(router *timedtypes.Router) {
	srv := keeper.NewMsgServerImpl(am.keeper)

	router.Register(types.TypeMsgUpdateParams, func() timedtypes.Msg { return &types.MsgUpdateParams{} }, timedtypes.NewHandler(srv.UpdateParams))
	router.Register(types.TypeMsgCreateContract, func() timedtypes.Msg { return &types.MsgCreateContract{} }, timedtypes.NewHandler(srv.CreateContract))
	router.Register(types.TypeMsgCancelContract, func() timedtypes.Msg { return &types.MsgCancelContract{} }, timedtypes.NewHandler(srv.CancelContract))
	router.Register(types.TypeMsgRent, func() timedtypes.Msg { return &types.MsgRent{} }, timedtypes.NewHandler(srv.Rent))
	router.Register(types.TypeMsgAcceptRentOffer, func() timedtypes.Msg { return &types.MsgAcceptRentOffer{} }, timedtypes.NewHandler(srv.AcceptRentOffer))
	router.Register(types.TypeMsgRetractRentOffer, func() timedtypes.Msg { return &types.MsgRetractRentOffer{} }, timedtypes.NewHandler(srv.RetractRentOffer))
	router.Register(types.TypeMsgRevokeContract, func() timedtypes.Msg { return &types.MsgRevokeContract{} }, timedtypes.NewHandler(srv.RevokeContract))
	router.Register(types.TypeMsgChangeSubscriptionTerms, func() timedtypes.Msg { return &types.MsgChangeSubscriptionTerms{} }, timedtypes.NewHandler(srv.ChangeSubscriptionTerms))
	router.Register(types.TypeMsgAcceptSubscriptionTerms, func() timedtypes.Msg { return &types.MsgAcceptSubscriptionTerms{} }, timedtypes.NewHandler(srv.AcceptSubscriptionTerms))
}

// BeginBlock expires, ends and renews the contracts that are due.
func (am AppModule) BeginBlock(ctx sdk.Context) {
	am.keeper.BeginBlocker(ctx)
}

// Invariant returns the rent module invariants.
func (am AppModule) Invariant() sdk.Invariant {
	return keeper.AllInvariants(am.keeper)
}
