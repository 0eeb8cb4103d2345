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
	"github.com/tempo-labs/timed-contracts/x/transmission/fees"
	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

type Keeper struct {
	storeKey storetypes.StoreKey

	bankKeeper types.BankKeeper
	nftKeeper  types.NFTKeeper

	// The address that is capable of executing a MsgUpdateParams message.
	authority string

	// feeCollectorProvider picks the fee recipient when the params name none.
	feeCollectorProvider types.FeeCollectorProvider
}

// NewKeeper returns a keeper sending protocol fees to the module account.
func NewKeeper(
	storeKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	nftKeeper types.NFTKeeper,
	authority string,
) *Keeper {
	return NewKeeperWithFeeCollectorProvider(
		storeKey,
		bankKeeper,
		nftKeeper,
		authority,
		fees.NewModuleAccountFeeCollectorProvider(),
	)
}

func NewKeeperWithFeeCollectorProvider(
	storeKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	nftKeeper types.NFTKeeper,
	authority string,
	feeCollectorProvider types.FeeCollectorProvider,
) *Keeper {
	// Ensure that the authority address is valid.
	if _, err := sdk.AccAddressFromBech32(authority); err != nil {
		panic(err)
	}

	return &Keeper{
		storeKey:             storeKey,
		bankKeeper:           bankKeeper,
		nftKeeper:            nftKeeper,
		authority:            authority,
		feeCollectorProvider: feeCollectorProvider,
	}
}

// Logger returns a transmission module-specific logger.
func (k *Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// GetAuthority returns the address that is capable of executing a MsgUpdateParams message.
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetParams returns the transmission module's parameters.
func (k *Keeper) GetParams(ctx sdk.Context) (types.Params, error) {
	store := ctx.KVStore(k.storeKey)

	key := types.KeyParams
	bz := store.Get(key)

	if len(bz) == 0 {
		return types.Params{}, fmt.Errorf("no params found for the transmission module")
	}

	params := types.Params{}
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, err
	}

	return params, nil
}

// SetParams sets the transmission module's parameters. Shrinking the
// transmission limit below the size of the queue fails.
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if queued := k.queue(ctx).Len(); queued > int(params.SimultaneousTransmissionLimit) {
		return fmt.Errorf("%d queued protocols exceed the simultaneous transmission limit %d", queued, params.SimultaneousTransmissionLimit)
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyParams, timedtypes.MustMarshalJSON(params))

	return nil
}

// queue opens the deadline queue of timed protocols. Its capacity is the
// simultaneous transmission limit.
func (k *Keeper) queue(ctx sdk.Context) deadline.Queue[uint32] {
	capacity := 0
	if params, err := k.GetParams(ctx); err == nil {
		capacity = int(params.SimultaneousTransmissionLimit)
	}

	return deadline.NewQueue[uint32](prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixQueue), capacity)
}

func (k *Keeper) transmissionStore(ctx sdk.Context) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixTransmission)
}

// GetFeeCollector returns the account receiving protocol fees.
func (k *Keeper) GetFeeCollector(ctx sdk.Context) (string, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return "", err
	}

	if params.FeeCollector != "" {
		return params.FeeCollector, nil
	}

	addr, err := k.feeCollectorProvider.GetFeeCollector(ctx)
	if err != nil {
		return "", err
	}

	return addr.String(), nil
}

// GetTransmission returns the transmission set on nftID.
func (k *Keeper) GetTransmission(ctx sdk.Context, nftID uint32) (types.TransmissionData, bool) {
	var raw types.RawTransmission
	if !timedtypes.MustGetJSON(k.transmissionStore(ctx), types.TransmissionKey(nftID), &raw) {
		return types.TransmissionData{}, false
	}

	_, t, err := types.TransmissionFromRaw(raw)
	if err != nil {
		panic(fmt.Errorf("corrupt transmission of nft %d: %w", nftID, err))
	}

	return t, true
}

func (k *Keeper) setTransmission(ctx sdk.Context, nftID uint32, t types.TransmissionData) {
	timedtypes.SetJSON(k.transmissionStore(ctx), types.TransmissionKey(nftID), t.ToRaw(nftID))
}

func (k *Keeper) removeTransmission(ctx sdk.Context, nftID uint32) {
	k.transmissionStore(ctx).Delete(types.TransmissionKey(nftID))
	k.queue(ctx).Remove(nftID)
}

// IterateTransmissions calls cb for every protocol in nft id order until cb
// returns true.
func (k *Keeper) IterateTransmissions(ctx sdk.Context, cb func(nftID uint32, t types.TransmissionData) (stop bool)) {
	it := k.transmissionStore(ctx).Iterator(nil, nil)
	defer it.Close()

	for ; it.Valid(); it.Next() {
		var raw types.RawTransmission
		if err := json.Unmarshal(it.Value(), &raw); err != nil {
			panic(err)
		}

		id, t, err := types.TransmissionFromRaw(raw)
		if err != nil {
			panic(fmt.Errorf("corrupt transmission of nft %d: %w", raw.NFTID, err))
		}

		if cb(id, t) {
			return
		}
	}
}

// GetTransmissions returns every transmission in nft id order.
func (k *Keeper) GetTransmissions(ctx sdk.Context) []types.RawTransmission {
	out := make([]types.RawTransmission, 0)
	k.IterateTransmissions(ctx, func(id uint32, t types.TransmissionData) bool {
		out = append(out, t.ToRaw(id))
		return false
	})

	return out
}

// GetQueue returns the deadline queue of timed protocols.
func (k *Keeper) GetQueue(ctx sdk.Context) []deadline.Entry[uint32] {
	return k.queue(ctx).Entries()
}
