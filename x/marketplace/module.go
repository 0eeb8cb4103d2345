package marketplace

import (
	"encoding/json"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/marketplace/keeper"
	"github.com/tempo-labs/timed-contracts/x/marketplace/types"
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

// Name returns the marketplace module's name.
func (AppModule) Name() string {
	return types.ModuleName
}

// StoreKey returns the key of the marketplace store.
func (am AppModule) StoreKey() *storetypes.KVStoreKey {
	return am.storeKey
}

// DefaultGenesis returns default genesis state as raw bytes for the marketplace module.
func (AppModule) DefaultGenesis() json.RawMessage {
	return timedtypes.MustMarshalJSON(types.DefaultGenesisState())
}

// ValidateGenesis performs genesis state validation for the marketplace module.
func (AppModule) ValidateGenesis(bz json.RawMessage) error {
	var gs types.GenesisState
	return timedtypes.UnmarshalGenesis(types.ModuleName, bz, &gs)
}

// InitGenesis performs the module's genesis initialization for the marketplace
// module.
func (am AppModule) InitGenesis(ctx sdk.Context, bz json.RawMessage) error {
	var gs types.GenesisState
	if err := timedtypes.UnmarshalGenesis(types.ModuleName, bz, &gs); err != nil {
		return err
	}

	am.keeper.InitGenesis(ctx, gs)
	return nil
}

// ExportGenesis returns the marketplace module's exported genesis state as raw
// JSON bytes.
func (am AppModule) ExportGenesis(ctx sdk.Context) (json.RawMessage, error) {
	return json.Marshal(am.keeper.ExportGenesis(ctx))
}

// RegisterMsgs registers the marketplace messages with the router.
func (am AppModule) RegisterMsgs(router *timedtypes.Router) {
	srv := keeper.NewMsgServerImpl(am.keeper)

	router.Register(types.TypeMsgCreateMarketplace, func() timedtypes.Msg { return &types.MsgCreateMarketplace{} }, timedtypes.NewHandler(srv.CreateMarketplace))
}
