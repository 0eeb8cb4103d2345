package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/balances/types"
)

var _ types.Currency = (*Keeper)(nil)

// Keeper tracks free balances per account. Module accounts pool the escrow
// of many users and are exempt from the existential deposit: they are never
// reaped and may hold any amount.
type Keeper struct {
	storeKey storetypes.StoreKey

	moduleAccounts map[string]bool
}

// NewKeeper returns a balances keeper. moduleAccounts lists the bech32
// addresses of the module escrow accounts.
func NewKeeper(storeKey storetypes.StoreKey, moduleAccounts ...string) *Keeper {
	accounts := make(map[string]bool, len(moduleAccounts))
	for _, addr := range moduleAccounts {
		accounts[addr] = true
	}

	return &Keeper{
		storeKey:       storeKey,
		moduleAccounts: accounts,
	}
}

// IsModuleAccount reports whether addr is a module escrow account.
func (k *Keeper) IsModuleAccount(addr string) bool {
	return k.moduleAccounts[addr]
}

// GetParams returns the balances module's parameters.
func (k *Keeper) GetParams(ctx sdk.Context) (types.Params, error) {
	store := ctx.KVStore(k.storeKey)

	bz := store.Get(types.KeyParams)
	if len(bz) == 0 {
		return types.Params{}, fmt.Errorf("no params found for the balances module")
	}

	params := types.Params{}
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, err
	}

	return params, nil
}

// SetParams sets the balances module's parameters.
func (k *Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	bz, err := json.Marshal(params)
	if err != nil {
		return err
	}

	ctx.KVStore(k.storeKey).Set(types.KeyParams, bz)

	return nil
}

func (k *Keeper) balanceStore(ctx sdk.Context) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixBalance)
}

// FreeBalance returns the spendable balance of addr.
func (k *Keeper) FreeBalance(goCtx context.Context, addr string) math.Int {
	bz := k.balanceStore(sdk.UnwrapSDKContext(goCtx)).Get([]byte(addr))
	if bz == nil {
		return math.ZeroInt()
	}

	var bal math.Int
	if err := bal.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("corrupt balance of %s: %w", addr, err))
	}

	return bal
}

// SetBalance overwrites the balance of addr. A zero amount reaps the account.
func (k *Keeper) SetBalance(ctx sdk.Context, addr string, amount math.Int) {
	store := k.balanceStore(ctx)
	if amount.IsNil() || !amount.IsPositive() {
		store.Delete([]byte(addr))
		return
	}

	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}

	store.Set([]byte(addr), bz)
}

// Withdraw debits amount from addr and returns it as an imbalance that must be
// deposited somewhere else. An account left below the existential deposit is
// reaped and its dust burned, unless req is KeepAlive or addr is a module
// account.
func (k *Keeper) Withdraw(goCtx context.Context, addr string, amount math.Int, req types.ExistenceRequirement) (types.Imbalance, error) {
	if amount.IsNil() || amount.IsNegative() {
		return types.Imbalance{}, errorsmod.Wrapf(types.ErrInvalidAmount, "cannot withdraw %s", amount)
	}
	if amount.IsZero() {
		return types.ZeroImbalance(), nil
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	balance := k.FreeBalance(ctx, addr)
	if balance.LT(amount) {
		return types.Imbalance{}, errorsmod.Wrapf(types.ErrInsufficientBalance, "%s has %s, needs %s", addr, balance, amount)
	}

	remaining := balance.Sub(amount)
	ed := k.existentialDeposit(ctx)
	if remaining.LT(ed) && !k.IsModuleAccount(addr) {
		if req == types.KeepAlive {
			return types.Imbalance{}, errorsmod.Wrapf(types.ErrKeepAlive, "%s would keep %s, below existential deposit %s", addr, remaining, ed)
		}

		k.burnDust(ctx, addr, remaining)
		remaining = math.ZeroInt()
	}

	k.SetBalance(ctx, addr, remaining)

	return types.Imbalance{Amount: amount}, nil
}

// Deposit credits the imbalance to addr. A credit that would leave an
// ordinary account below the existential deposit cannot open the account and
// is burned.
func (k *Keeper) Deposit(goCtx context.Context, addr string, imbalance types.Imbalance) {
	if imbalance.Amount.IsNil() || !imbalance.Amount.IsPositive() {
		return
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	total := timedtypes.SaturatingAdd(k.FreeBalance(ctx, addr), imbalance.Amount)
	if total.LT(k.existentialDeposit(ctx)) && !k.IsModuleAccount(addr) {
		k.burnDust(ctx, addr, imbalance.Amount)
		return
	}

	k.SetBalance(ctx, addr, total)
}

// Transfer moves amount between two accounts. Unlike Deposit it refuses to
// burn: a transfer that cannot open the destination account fails.
func (k *Keeper) Transfer(ctx sdk.Context, from, to string, amount math.Int, req types.ExistenceRequirement) error {
	if !amount.IsNil() && amount.IsPositive() && from != to && !k.IsModuleAccount(to) {
		ed := k.existentialDeposit(ctx)
		if total := k.FreeBalance(ctx, to).Add(amount); total.LT(ed) {
			return errorsmod.Wrapf(types.ErrExistentialDeposit, "%s would hold %s, existential deposit is %s", to, total, ed)
		}
	}

	return types.Transfer(ctx, k, from, to, amount, req)
}

// TotalIssuance sums every balance.
func (k *Keeper) TotalIssuance(ctx sdk.Context) math.Int {
	total := math.ZeroInt()
	k.IterateBalances(ctx, func(_ string, bal math.Int) bool {
		total = timedtypes.SaturatingAdd(total, bal)
		return false
	})

	return total
}

// IterateBalances calls cb for every account in address order until cb
// returns true.
func (k *Keeper) IterateBalances(ctx sdk.Context, cb func(addr string, bal math.Int) (stop bool)) {
	it := k.balanceStore(ctx).Iterator(nil, nil)
	defer it.Close()

	for ; it.Valid(); it.Next() {
		var bal math.Int
		if err := bal.Unmarshal(it.Value()); err != nil {
			panic(fmt.Errorf("corrupt balance of %s: %w", it.Key(), err))
		}

		if cb(string(it.Key()), bal) {
			return
		}
	}
}

func (k *Keeper) existentialDeposit(ctx sdk.Context) math.Int {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.DefaultExistentialDeposit
	}

	return params.ExistentialDeposit
}

func (k *Keeper) burnDust(ctx sdk.Context, addr string, amount math.Int) {
	if !amount.IsPositive() {
		return
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDustBurned,
			sdk.NewAttribute(types.AttributeKeyAccount, addr),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
}

// InitGenesis initializes the balances module's state from a given genesis state.
func (k *Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) {
	if err := k.SetParams(ctx, gs.Params); err != nil {
		panic(err)
	}

	for _, b := range gs.Balances {
		k.SetBalance(ctx, b.Address, b.Amount)
	}
}

// ExportGenesis returns a GenesisState with balances sorted by address.
func (k *Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	params, err := k.GetParams(ctx)
	if err != nil {
		panic(err)
	}

	balances := make([]types.Balance, 0)
	k.IterateBalances(ctx, func(addr string, bal math.Int) bool {
		balances = append(balances, types.Balance{Address: addr, Amount: bal})
		return false
	})

	return types.NewGenesisState(params, balances)
}
