package keeper

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/nft/types"
)

// Keeper stores NFTs and their state flags.
type Keeper struct {
	storeKey storetypes.StoreKey
}

// NewKeeper returns an nft keeper backed by the store of storeKey.
func NewKeeper(storeKey storetypes.StoreKey) *Keeper {
	return &Keeper{storeKey: storeKey}
}

func (k *Keeper) nftStore(ctx sdk.Context) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixNFT)
}

// CreateNFT mints a new NFT owned by owner and returns its id.
func (k *Keeper) CreateNFT(goCtx context.Context, owner, offchain string, royalty timedtypes.Permill) (uint32, error) {
	if err := royalty.Validate(); err != nil {
		return 0, err
	}
	if owner == "" {
		return 0, errorsmod.Wrap(types.ErrInvalidOwner, "empty owner")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	store := ctx.KVStore(k.storeKey)

	id := timedtypes.GetUint32(store, types.KeyNextID)
	timedtypes.SetUint32(store, types.KeyNextID, id+1)

	k.setNFT(ctx, types.NFT{
		ID:       id,
		Owner:    owner,
		Creator:  owner,
		Offchain: offchain,
		Royalty:  royalty,
	})

	return id, nil
}

// GetNFT returns the NFT with the given id.
func (k *Keeper) GetNFT(goCtx context.Context, id uint32) (types.NFT, bool) {
	var n types.NFT
	ok := timedtypes.MustGetJSON(k.nftStore(sdk.UnwrapSDKContext(goCtx)), timedtypes.Uint32ToBigEndian(id), &n)

	return n, ok
}

func (k *Keeper) setNFT(ctx sdk.Context, n types.NFT) {
	timedtypes.SetJSON(k.nftStore(ctx), timedtypes.Uint32ToBigEndian(n.ID), n)
}

// SetOwner transfers the NFT to owner.
func (k *Keeper) SetOwner(goCtx context.Context, id uint32, owner string) error {
	n, ok := k.GetNFT(goCtx, id)
	if !ok {
		return errorsmod.Wrapf(types.ErrNFTNotFound, "id %d", id)
	}
	if owner == "" {
		return errorsmod.Wrap(types.ErrInvalidOwner, "empty owner")
	}

	n.Owner = owner
	k.setNFT(sdk.UnwrapSDKContext(goCtx), n)

	return nil
}

// SetFlag sets a single state flag of the NFT.
func (k *Keeper) SetFlag(goCtx context.Context, id uint32, flag types.Flag, value bool) error {
	n, ok := k.GetNFT(goCtx, id)
	if !ok {
		return errorsmod.Wrapf(types.ErrNFTNotFound, "id %d", id)
	}

	if err := n.State.Set(flag, value); err != nil {
		return errorsmod.Wrapf(err, "flag %s", flag)
	}
	k.setNFT(sdk.UnwrapSDKContext(goCtx), n)

	return nil
}

// InitGenesis initializes the nft module's state from a given genesis state.
func (k *Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) {
	timedtypes.SetUint32(ctx.KVStore(k.storeKey), types.KeyNextID, gs.NextID)
	for _, n := range gs.NFTs {
		k.setNFT(ctx, n)
	}
}

// ExportGenesis returns a GenesisState with NFTs sorted by id.
func (k *Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	nfts := make([]types.NFT, 0)

	it := k.nftStore(ctx).Iterator(nil, nil)
	defer it.Close()

	for ; it.Valid(); it.Next() {
		var n types.NFT
		if err := json.Unmarshal(it.Value(), &n); err != nil {
			panic(err)
		}
		nfts = append(nfts, n)
	}

	return &types.GenesisState{
		NextID: timedtypes.GetUint32(ctx.KVStore(k.storeKey), types.KeyNextID),
		NFTs:   nfts,
	}
}
