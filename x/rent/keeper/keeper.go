package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tempo-labs/timed-contracts/deadline"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

type Keeper struct {
	storeKey storetypes.StoreKey

	bankKeeper types.BankKeeper
	nftKeeper  types.NFTKeeper

	// The address that is capable of executing a MsgUpdateParams message.
	authority string
}

func NewKeeper(
	storeKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	nftKeeper types.NFTKeeper,
	authority string,
) *Keeper {
	// Ensure that the authority address is valid.
	if _, err := sdk.AccAddressFromBech32(authority); err != nil {
		panic(err)
	}

	return &Keeper{
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
		nftKeeper:  nftKeeper,
		authority:  authority,
	}
}

// Logger returns a rent module-specific logger.
func (k *Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// GetAuthority returns the address that is capable of executing a MsgUpdateParams message.
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetParams returns the rent module's parameters.
func (k *Keeper) GetParams(ctx sdk.Context) (types.Params, error) {
	store := ctx.KVStore(k.storeKey)

	key := types.KeyParams
	bz := store.Get(key)

	if len(bz) == 0 {
		return types.Params{}, fmt.Errorf("no params found for the rent module")
	}

	params := types.Params{}
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, err
	}

	return params, nil
}

// SetParams sets the rent module's parameters. Shrinking the contract limit
// below the size of any queue fails.
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	limit := int(params.SimultaneousContractLimit)
	for _, kind := range []queueKind{availableQueue, fixedQueue, subscriptionQueue} {
		if n := k.queue(ctx, kind).Len(); n > limit {
			return fmt.Errorf("%d queued contracts exceed the simultaneous contract limit %d", n, limit)
		}
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyParams, timedtypes.MustMarshalJSON(params))

	return nil
}

type queueKind uint8

const (
	availableQueue queueKind = iota
	fixedQueue
	subscriptionQueue
)

// queue opens one of the three deadline queues. Each holds at most
// SimultaneousContractLimit entries.
func (k *Keeper) queue(ctx sdk.Context, kind queueKind) deadline.Queue[uint32] {
	capacity := 0
	if params, err := k.GetParams(ctx); err == nil {
		capacity = int(params.SimultaneousContractLimit)
	}

	key := types.KeyPrefixAvailableQueue
	switch kind {
	case fixedQueue:
		key = types.KeyPrefixFixedQueue
	case subscriptionQueue:
		key = types.KeyPrefixSubscriptionQueue
	}

	return deadline.NewQueue[uint32](prefix.NewStore(ctx.KVStore(k.storeKey), key), capacity)
}

func (k *Keeper) contractStore(ctx sdk.Context) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixContract)
}

func (k *Keeper) offerStore(ctx sdk.Context) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixOffers)
}

// GetContract returns the contract of nftID.
func (k *Keeper) GetContract(ctx sdk.Context, nftID uint32) (types.RentContract, bool) {
	var raw types.RawRentContract
	if !timedtypes.MustGetJSON(k.contractStore(ctx), types.ContractKey(nftID), &raw) {
		return types.RentContract{}, false
	}

	_, c, err := types.ContractFromRaw(raw)
	if err != nil {
		panic(fmt.Errorf("corrupt contract of nft %d: %w", nftID, err))
	}

	return c, true
}

// HasContract reports whether nftID is under a contract.
func (k *Keeper) HasContract(ctx sdk.Context, nftID uint32) bool {
	return k.contractStore(ctx).Has(types.ContractKey(nftID))
}

func (k *Keeper) setContract(ctx sdk.Context, nftID uint32, c types.RentContract) {
	timedtypes.SetJSON(k.contractStore(ctx), types.ContractKey(nftID), c.ToRaw(nftID))
}

// removeContract drops the contract of nftID together with its queue entry
// and its offers.
func (k *Keeper) removeContract(ctx sdk.Context, nftID uint32) {
	k.contractStore(ctx).Delete(types.ContractKey(nftID))
	k.offerStore(ctx).Delete(types.ContractKey(nftID))
	for _, kind := range []queueKind{availableQueue, fixedQueue, subscriptionQueue} {
		k.queue(ctx, kind).Remove(nftID)
	}
}

// IterateContracts calls cb for every contract in nft id order until cb
// returns true.
func (k *Keeper) IterateContracts(ctx sdk.Context, cb func(nftID uint32, c types.RentContract) (stop bool)) {
	it := k.contractStore(ctx).Iterator(nil, nil)
	defer it.Close()

	for ; it.Valid(); it.Next() {
		var raw types.RawRentContract
		if err := json.Unmarshal(it.Value(), &raw); err != nil {
			panic(err)
		}

		id, c, err := types.ContractFromRaw(raw)
		if err != nil {
			panic(fmt.Errorf("corrupt contract of nft %d: %w", raw.NFTID, err))
		}

		if cb(id, c) {
			return
		}
	}
}

// GetContracts returns every contract in nft id order.
func (k *Keeper) GetContracts(ctx sdk.Context) []types.RawRentContract {
	out := make([]types.RawRentContract, 0)
	k.IterateContracts(ctx, func(id uint32, c types.RentContract) bool {
		out = append(out, c.ToRaw(id))
		return false
	})

	return out
}

// GetOffers returns the accounts waiting to rent nftID, oldest first.
func (k *Keeper) GetOffers(ctx sdk.Context, nftID uint32) []string {
	var offers []string
	timedtypes.MustGetJSON(k.offerStore(ctx), types.ContractKey(nftID), &offers)

	return offers
}

func (k *Keeper) setOffers(ctx sdk.Context, nftID uint32, offers []string) {
	if len(offers) == 0 {
		k.offerStore(ctx).Delete(types.ContractKey(nftID))
		return
	}

	timedtypes.SetJSON(k.offerStore(ctx), types.ContractKey(nftID), offers)
}

// IterateOffers calls cb for the offers of every contract in nft id order
// until cb returns true.
func (k *Keeper) IterateOffers(ctx sdk.Context, cb func(o types.Offer) (stop bool)) {
	it := k.offerStore(ctx).Iterator(nil, nil)
	defer it.Close()

	for ; it.Valid(); it.Next() {
		var rentees []string
		if err := json.Unmarshal(it.Value(), &rentees); err != nil {
			panic(err)
		}

		if cb(types.Offer{NFTID: timedtypes.BigEndianToUint32(it.Key()), Rentees: rentees}) {
			return
		}
	}
}

func (k *Keeper) hasOffer(ctx sdk.Context, nftID uint32, rentee string) bool {
	for _, r := range k.GetOffers(ctx, nftID) {
		if r == rentee {
			return true
		}
	}

	return false
}

func (k *Keeper) removeOffer(ctx sdk.Context, nftID uint32, rentee string) bool {
	offers := k.GetOffers(ctx, nftID)
	for i, r := range offers {
		if r != rentee {
			continue
		}

		k.setOffers(ctx, nftID, append(offers[:i:i], offers[i+1:]...))

		return true
	}

	return false
}

// GetAvailableQueue returns the expiry queue of contracts waiting for a rentee.
func (k *Keeper) GetAvailableQueue(ctx sdk.Context) []deadline.Entry[uint32] {
	return k.queue(ctx, availableQueue).Entries()
}

// GetFixedQueue returns the end queue of started fixed contracts.
func (k *Keeper) GetFixedQueue(ctx sdk.Context) []deadline.Entry[uint32] {
	return k.queue(ctx, fixedQueue).Entries()
}

// GetSubscriptionQueue returns the renewal queue of started subscriptions.
func (k *Keeper) GetSubscriptionQueue(ctx sdk.Context) []deadline.Entry[uint32] {
	return k.queue(ctx, subscriptionQueue).Entries()
}
