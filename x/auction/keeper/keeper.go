package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/deadline"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
)

type Keeper struct {
	storeKey storetypes.StoreKey

	bankKeeper        types.BankKeeper
	nftKeeper         types.NFTKeeper
	marketplaceKeeper types.MarketplaceKeeper

	// The address that is capable of executing a MsgUpdateParams message.
	authority string
}

func NewKeeper(
	storeKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	nftKeeper types.NFTKeeper,
	marketplaceKeeper types.MarketplaceKeeper,
	authority string,
) *Keeper {
	// Ensure that the authority address is valid.
	if _, err := sdk.AccAddressFromBech32(authority); err != nil {
		panic(err)
	}

	return &Keeper{
		storeKey:          storeKey,
		bankKeeper:        bankKeeper,
		nftKeeper:         nftKeeper,
		marketplaceKeeper: marketplaceKeeper,
		authority:         authority,
	}
}

// Logger returns an auction module-specific logger.
func (k *Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// GetAuthority returns the address that is capable of executing a MsgUpdateParams message.
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetParams returns the auction module's parameters.
func (k *Keeper) GetParams(ctx sdk.Context) (types.Params, error) {
	store := ctx.KVStore(k.storeKey)

	key := types.KeyParams
	bz := store.Get(key)

	if len(bz) == 0 {
		return types.Params{}, fmt.Errorf("no params found for the auction module")
	}

	params := types.Params{}
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, err
	}

	return params, nil
}

// SetParams sets the auction module's parameters. Shrinking the parallel
// auction limit below the number of live auctions fails.
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if live := k.deadlines(ctx).Len(); live > int(params.ParallelAuctionLimit) {
		return fmt.Errorf("%d live auctions exceed the parallel auction limit %d", live, params.ParallelAuctionLimit)
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyParams, timedtypes.MustMarshalJSON(params))

	return nil
}

// deadlines opens the deadline queue. Its capacity is the parallel auction
// limit.
func (k *Keeper) deadlines(ctx sdk.Context) deadline.Queue[uint32] {
	capacity := 0
	if params, err := k.GetParams(ctx); err == nil {
		capacity = int(params.ParallelAuctionLimit)
	}

	return deadline.NewQueue[uint32](prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixDeadlines), capacity)
}

func (k *Keeper) auctionStore(ctx sdk.Context) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixAuction)
}

func (k *Keeper) claimStore(ctx sdk.Context) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixClaim)
}

// GetAuction returns the auction of nftID.
func (k *Keeper) GetAuction(ctx sdk.Context, nftID uint32) (types.AuctionData, bool) {
	var raw types.RawAuction
	if !timedtypes.MustGetJSON(k.auctionStore(ctx), types.AuctionKey(nftID), &raw) {
		return types.AuctionData{}, false
	}

	_, a, err := types.AuctionFromRaw(raw)
	if err != nil {
		panic(fmt.Errorf("corrupt auction of nft %d: %w", nftID, err))
	}

	return a, true
}

// HasAuction reports whether nftID is auctioned.
func (k *Keeper) HasAuction(ctx sdk.Context, nftID uint32) bool {
	return k.auctionStore(ctx).Has(types.AuctionKey(nftID))
}

func (k *Keeper) setAuction(ctx sdk.Context, nftID uint32, a types.AuctionData) {
	timedtypes.SetJSON(k.auctionStore(ctx), types.AuctionKey(nftID), a.ToRaw(nftID))
}

func (k *Keeper) removeAuction(ctx sdk.Context, nftID uint32) {
	k.auctionStore(ctx).Delete(types.AuctionKey(nftID))
	k.deadlines(ctx).Remove(nftID)
}

// IterateAuctions calls cb for every auction in nft id order until cb
// returns true.
func (k *Keeper) IterateAuctions(ctx sdk.Context, cb func(raw types.RawAuction) (stop bool)) {
	it := k.auctionStore(ctx).Iterator(nil, nil)
	defer it.Close()

	for ; it.Valid(); it.Next() {
		var raw types.RawAuction
		if err := json.Unmarshal(it.Value(), &raw); err != nil {
			panic(err)
		}

		if cb(raw) {
			return
		}
	}
}

// GetAuctions returns every auction in nft id order.
func (k *Keeper) GetAuctions(ctx sdk.Context) []types.RawAuction {
	out := make([]types.RawAuction, 0)
	k.IterateAuctions(ctx, func(raw types.RawAuction) bool {
		out = append(out, raw)
		return false
	})

	return out
}

// GetDeadlines returns the deadline queue in processing order.
func (k *Keeper) GetDeadlines(ctx sdk.Context) []deadline.Entry[uint32] {
	return k.deadlines(ctx).Entries()
}

// GetClaim returns the amount owed to addr.
func (k *Keeper) GetClaim(ctx sdk.Context, addr string) math.Int {
	bz := k.claimStore(ctx).Get([]byte(addr))
	if bz == nil {
		return math.ZeroInt()
	}

	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("corrupt claim of %s: %w", addr, err))
	}

	return amount
}

func (k *Keeper) setClaim(ctx sdk.Context, addr string, amount math.Int) {
	if !timedtypes.IsPositive(amount) {
		k.claimStore(ctx).Delete([]byte(addr))
		return
	}

	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}

	k.claimStore(ctx).Set([]byte(addr), bz)
}

func (k *Keeper) addClaim(ctx sdk.Context, addr string, amount math.Int) {
	if !timedtypes.IsPositive(amount) {
		return
	}

	k.setClaim(ctx, addr, timedtypes.SaturatingAdd(k.GetClaim(ctx, addr), amount))
}

// IterateClaims calls cb for every claim in address order until cb returns
// true.
func (k *Keeper) IterateClaims(ctx sdk.Context, cb func(c types.Claim) (stop bool)) {
	it := k.claimStore(ctx).Iterator(nil, nil)
	defer it.Close()

	for ; it.Valid(); it.Next() {
		var amount math.Int
		if err := amount.Unmarshal(it.Value()); err != nil {
			panic(err)
		}

		if cb(types.Claim{Address: string(it.Key()), Amount: amount}) {
			return
		}
	}
}
