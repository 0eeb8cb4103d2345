package keeper

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/marketplace/types"
)

// Keeper stores marketplaces.
type Keeper struct {
	storeKey storetypes.StoreKey
}

// NewKeeper returns a marketplace keeper backed by the store of storeKey.
func NewKeeper(storeKey storetypes.StoreKey) *Keeper {
	return &Keeper{storeKey: storeKey}
}

func (k *Keeper) marketplaceStore(ctx sdk.Context) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixMarketplace)
}

// CreateMarketplace registers a marketplace and returns its id.
func (k *Keeper) CreateMarketplace(goCtx context.Context, owner string, commission timedtypes.Permill) (uint32, error) {
	if err := commission.Validate(); err != nil {
		return 0, errorsmod.Wrap(types.ErrInvalidCommission, err.Error())
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	store := ctx.KVStore(k.storeKey)

	id := timedtypes.GetUint32(store, types.KeyNextID)
	timedtypes.SetUint32(store, types.KeyNextID, id+1)
	k.setMarketplace(ctx, types.Marketplace{ID: id, Owner: owner, CommissionFee: commission})

	return id, nil
}

// GetMarketplace returns the marketplace with the given id.
func (k *Keeper) GetMarketplace(goCtx context.Context, id uint32) (types.Marketplace, bool) {
	var m types.Marketplace
	ok := timedtypes.MustGetJSON(k.marketplaceStore(sdk.UnwrapSDKContext(goCtx)), timedtypes.Uint32ToBigEndian(id), &m)

	return m, ok
}

func (k *Keeper) setMarketplace(ctx sdk.Context, m types.Marketplace) {
	timedtypes.SetJSON(k.marketplaceStore(ctx), timedtypes.Uint32ToBigEndian(m.ID), m)
}

// InitGenesis initializes the marketplace module's state from a given genesis state.
func (k *Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) {
	timedtypes.SetUint32(ctx.KVStore(k.storeKey), types.KeyNextID, gs.NextID)
	for _, m := range gs.Marketplaces {
		k.setMarketplace(ctx, m)
	}
}

// ExportGenesis returns a GenesisState with marketplaces sorted by id.
func (k *Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	out := make([]types.Marketplace, 0)

	it := k.marketplaceStore(ctx).Iterator(nil, nil)
	defer it.Close()

	for ; it.Valid(); it.Next() {
		var m types.Marketplace
		if err := json.Unmarshal(it.Value(), &m); err != nil {
			panic(err)
		}
		out = append(out, m)
	}

	return &types.GenesisState{
		NextID:       timedtypes.GetUint32(ctx.KVStore(k.storeKey), types.KeyNextID),
		Marketplaces: out,
	}
}
