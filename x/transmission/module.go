package transmission

import (
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/transmission/keeper"
	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

var (
	_ timedtypes.AppModule       = AppModule{}
	_ timedtypes.HasBeginBlocker = AppModule{}
	_ timedtypes.HasInvariants   = AppModule{}
)

// ConsensusVersion defines the current x/transmission module consensus version.
const ConsensusVersion = 1

type AppModule struct {
	keeper   *keeper.Keeper
	storeKey *storetypes.KVStoreKey
}

// NewAppModule creates a new AppModule object.
func NewAppModule(keeper *keeper.Keeper, storeKey *storetypes.KVStoreKey) AppModule {
	return AppModule{keeper: keeper, storeKey: storeKey}
}

// Name returns the transmission module's name.
func (AppModule) Name() string {
	return types.ModuleName
}

// StoreKey returns the key of the transmission store.
func (am AppModule) StoreKey() *storetypes.KVStoreKey {
	return am.storeKey
}

// ConsensusVersion returns the version of the module's state layout.
func (AppModule) ConsensusVersion() uint64 { return ConsensusVersion }

// DefaultGenesis returns default genesis state as raw bytes for the transmission module.
func (AppModule) DefaultGenesis() json.RawMessage {
	return timedtypes.MustMarshalJSON(types.DefaultGenesisState())
}

// ValidateGenesis performs genesis state validation for the transmission module.
func (AppModule) ValidateGenesis(bz json.RawMessage) error {
	var gs types.GenesisState
	return timedtypes.UnmarshalGenesis(types.ModuleName, bz, &gs)
}

// InitGenesis performs the module's genesis initialization for the transmission
// module.
func (am AppModule) InitGenesis(ctx sdk.Context, bz json.RawMessage) error {
	var gs types.GenesisState
	if err := timedtypes.UnmarshalGenesis(types.ModuleName, bz, &gs); err != nil {
		return err
	}

	am.keeper.InitGenesis(ctx, gs)
	return nil
}

// ExportGenesis returns the transmission module's exported genesis state as raw
// JSON bytes.
func (am AppModule) ExportGenesis(ctx sdk.Context) (json.RawMessage, error) {
	return json.Marshal(am.keeper.ExportGenesis(ctx))
}

// RegisterMsgs registers the transmission messages with the router.
func (am AppModule) RegisterMsgs(router *timedtypes.Router) {
	srv := keeper.NewMsgServerImpl(am.keeper)

	router.Register(types.TypeMsgUpdateParams, func() timedtypes.Msg { return &types.MsgUpdateParams{} }, timedtypes.NewHandler(srv.UpdateParams))
	router.Register(types.TypeMsgSetTransmissionProtocol, func() timedtypes.Msg { return &types.MsgSetTransmissionProtocol{} }, timedtypes.NewHandler(srv.SetTransmissionProtocol))
	router.Register(types.TypeMsgRemoveTransmissionProtocol, func() timedtypes.Msg { return &types.MsgRemoveTransmissionProtocol{} }, timedtypes.NewHandler(srv.RemoveTransmissionProtocol))
	router.Register(types.TypeMsgResetTimer, func() timedtypes.Msg { return &types.MsgResetTimer{} }, timedtypes.NewHandler(srv.ResetTimer))
	router.Register(types.TypeMsgAddConsent, func() timedtypes.Msg { return &types.MsgAddConsent{} }, timedtypes.NewHandler(srv.AddConsent))
}

// BeginBlock runs the protocols whose block was reached.
func (am AppModule) BeginBlock(ctx sdk.Context) {
	am.keeper.BeginBlocker(ctx)
}

// Invariant returns the transmission module invariants.
func (am AppModule) Invariant() sdk.Invariant {
	return keeper.AllInvariants(am.keeper)
}
