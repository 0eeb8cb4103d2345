package balances

import (
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/balances/keeper"
	"github.com/tempo-labs/timed-contracts/x/balances/types"
)

var _ timedtypes.AppModule = AppModule{}

type AppModule struct {
	keeper   *keeper.Keeper
	storeKey *storetypes.KVStoreKey
}

// NewAppModule creates a new AppModule object.
func NewAppModule(keeper *keeper.Keeper, storeKey *storetypes.KVStoreKey) AppModule {
	return AppModule{keeper: keeper, storeKey: storeKey}
}

// Name returns the balances module's name.
func (AppModule) Name() string {
	return types.ModuleName
}

// StoreKey returns the key of the balances store.
func (am AppModule) StoreKey() *storetypes.KVStoreKey {
	return am.storeKey
}

// DefaultGenesis returns default genesis state as raw bytes for the balances module.
func (AppModule) DefaultGenesis() json.RawMessage {
	return timedtypes.MustMarshalJSON(types.DefaultGenesisState())
}

// ValidateGenesis performs genesis state validation for the balances module.
func (AppModule) ValidateGenesis(bz json.RawMessage) error {
	var gs types.GenesisState
	return timedtypes.UnmarshalGenesis(types.ModuleName, bz, &gs)
}

// InitGenesis performs the module's genesis initialization for the balances
// module.
func (am AppModule) InitGenesis(ctx sdk.Context, bz json.RawMessage) error {
	var gs types.GenesisState
	if err := timedtypes.UnmarshalGenesis(types.ModuleName, bz, &gs); err != nil {
		return err
	}

	am.keeper.InitGenesis(ctx, gs)
	return nil
}

// ExportGenesis returns the balances module's exported genesis state as raw
// JSON bytes.
func (am AppModule) ExportGenesis(ctx sdk.Context) (json.RawMessage, error) {
	return json.Marshal(am.keeper.ExportGenesis(ctx))
}

// RegisterMsgs registers the balances messages with the router.
func (am AppModule) RegisterMsgs(router *timedtypes.Router) {
	srv := keeper.NewMsgServerImpl(am.keeper)

	router.Register(types.TypeMsgTransfer, func() timedtypes.Msg { return &types.MsgTransfer{} }, timedtypes.NewHandler(srv.Transfer))
}
