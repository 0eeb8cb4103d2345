package app

import (
	"encoding/json"
	"fmt"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	cosmosstore "cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	pruningtypes "cosmossdk.io/store/pruning/types"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/tempo-labs/timed-contracts/store"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/auction"
	auctionkeeper "github.com/tempo-labs/timed-contracts/x/auction/keeper"
	auctiontypes "github.com/tempo-labs/timed-contracts/x/auction/types"
	"github.com/tempo-labs/timed-contracts/x/balances"
	balanceskeeper "github.com/tempo-labs/timed-contracts/x/balances/keeper"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	"github.com/tempo-labs/timed-contracts/x/marketplace"
	marketplacekeeper "github.com/tempo-labs/timed-contracts/x/marketplace/keeper"
	marketplacetypes "github.com/tempo-labs/timed-contracts/x/marketplace/types"
	"github.com/tempo-labs/timed-contracts/x/nft"
	nftkeeper "github.com/tempo-labs/timed-contracts/x/nft/keeper"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	"github.com/tempo-labs/timed-contracts/x/rent"
	rentkeeper "github.com/tempo-labs/timed-contracts/x/rent/keeper"
	renttypes "github.com/tempo-labs/timed-contracts/x/rent/types"
	"github.com/tempo-labs/timed-contracts/x/transmission"
	"github.com/tempo-labs/timed-contracts/x/transmission/fees"
	transmissionkeeper "github.com/tempo-labs/timed-contracts/x/transmission/keeper"
	transmissiontypes "github.com/tempo-labs/timed-contracts/x/transmission/types"
)

type (
	// Engine hosts every module and serialises all access to their state.
	// Messages, block advances, queries and genesis run one at a time.
	//
	// Module state lives in an in-memory IAVL multistore. Every message and
	// every resolution runs on a cache of it and is written back only when it
	// succeeds.
	Engine struct {
		mu sync.Mutex

		logger log.Logger
		opts   Options
		store  *store.Store

		height  uint64
		cms     storetypes.CommitMultiStore
		router  *timedtypes.Router
		modules []timedtypes.AppModule
		events  *EventLog

		keepers Keepers
	}

	// Keepers holds the keepers of every module hosted by an Engine.
	Keepers struct {
		BankKeeper         *balanceskeeper.Keeper
		NFTKeeper          *nftkeeper.Keeper
		MarketplaceKeeper  *marketplacekeeper.Keeper
		AuctionKeeper      *auctionkeeper.Keeper
		RentKeeper         *rentkeeper.Keeper
		TransmissionKeeper *transmissionkeeper.Keeper
	}

	// Queriers gives read access to module state inside Engine.Query.
	Queriers struct {
		Keepers

		Auction      *auctionkeeper.QueryServer
		Rent         *rentkeeper.QueryServer
		Transmission *transmissionkeeper.QueryServer
	}

	// TxResult is the outcome of a delivered message.
	TxResult struct {
		Height uint64  `json:"height"`
		Events []Event `json:"events"`
	}
)

// NewEngine wires every module. st may be nil, in which case events are only
// kept in memory and snapshots are disabled.
func NewEngine(logger log.Logger, opts Options, st *store.Store) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var feeCollectorProvider transmissiontypes.FeeCollectorProvider
	switch opts.FeeCollector {
	case FeeCollectorProposer:
		feeCollectorProvider = fees.NewProposerFeeCollectorProvider()
	default:
		feeCollectorProvider = fees.NewModuleAccountFeeCollectorProvider()
	}

	keys := storetypes.NewKVStoreKeys(
		balancestypes.StoreKey,
		nfttypes.StoreKey,
		marketplacetypes.StoreKey,
		auctiontypes.StoreKey,
		renttypes.StoreKey,
		transmissiontypes.StoreKey,
	)

	// module escrow accounts pool funds of many users and are never reaped
	bankKeeper := balanceskeeper.NewKeeper(
		keys[balancestypes.StoreKey],
		auctiontypes.ModuleAddress.String(),
		renttypes.ModuleAddress.String(),
		transmissiontypes.ModuleAddress.String(),
	)
	nftKeeper := nftkeeper.NewKeeper(keys[nfttypes.StoreKey])
	marketplaceKeeper := marketplacekeeper.NewKeeper(keys[marketplacetypes.StoreKey])

	transmissionKeeper := transmissionkeeper.NewKeeperWithFeeCollectorProvider(
		keys[transmissiontypes.StoreKey],
		bankKeeper,
		nftKeeper,
		opts.Authority,
		feeCollectorProvider,
	)

	keepers := Keepers{
		BankKeeper:         bankKeeper,
		NFTKeeper:          nftKeeper,
		MarketplaceKeeper:  marketplaceKeeper,
		AuctionKeeper:      auctionkeeper.NewKeeper(keys[auctiontypes.StoreKey], bankKeeper, nftKeeper, marketplaceKeeper, opts.Authority),
		RentKeeper:         rentkeeper.NewKeeper(keys[renttypes.StoreKey], bankKeeper, nftKeeper, opts.Authority),
		TransmissionKeeper: transmissionKeeper,
	}

	// BeginBlockers run in this order.
	modules := []timedtypes.AppModule{
		balances.NewAppModule(keepers.BankKeeper, keys[balancestypes.StoreKey]),
		nft.NewAppModule(keepers.NFTKeeper, keys[nfttypes.StoreKey]),
		marketplace.NewAppModule(keepers.MarketplaceKeeper, keys[marketplacetypes.StoreKey]),
		auction.NewAppModule(keepers.AuctionKeeper, keys[auctiontypes.StoreKey]),
		rent.NewAppModule(keepers.RentKeeper, keys[renttypes.StoreKey]),
		transmission.NewAppModule(keepers.TransmissionKeeper, keys[transmissiontypes.StoreKey]),
	}

	router := timedtypes.NewRouter()
	for _, m := range modules {
		m.RegisterMsgs(router)
	}

	e := &Engine{
		logger:  logger.With("module", "app"),
		opts:    opts,
		store:   st,
		router:  router,
		modules: modules,
		events:  NewEventLog(opts.EventLogSize),
		keepers: keepers,
	}

	// start from the default state so that the engine is usable before any
	// genesis is loaded
	if err := e.initGenesis(e.DefaultGenesis()); err != nil {
		return nil, fmt.Errorf("failed to init default genesis: %w", err)
	}

	return e, nil
}

// newMultiStore mounts one IAVL store per module on an in-memory database.
// Committed versions are pruned since the state is never queried at past
// heights.
func (e *Engine) newMultiStore() (storetypes.CommitMultiStore, error) {
	db := dbm.NewMemDB()

	cms := cosmosstore.NewCommitMultiStore(db, e.logger, metrics.NewNoOpMetrics())
	cms.SetPruning(pruningtypes.NewPruningOptions(pruningtypes.PruningEverything))
	for _, m := range e.modules {
		cms.MountStoreWithDB(m.StoreKey(), storetypes.StoreTypeIAVL, db)
	}

	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load multistore: %w", err)
	}

	return cms, nil
}

// Logger returns the engine logger.
func (e *Engine) Logger() log.Logger {
	return e.logger
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// Height returns the last executed block.
func (e *Engine) Height() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.height
}

// MsgTypes returns every registered message type.
func (e *Engine) MsgTypes() []string {
	return e.router.Types()
}

// Decode builds a message from its envelope.
func (e *Engine) Decode(env timedtypes.Envelope) (timedtypes.Msg, error) {
	return e.router.Decode(env)
}

func (e *Engine) header() cmtproto.Header {
	return cmtproto.Header{
		ChainID:         e.opts.ChainID,
		Height:          int64(e.height),
		ProposerAddress: e.opts.proposerBytes(),
	}
}

// newContext returns a context writing to the working state.
func (e *Engine) newContext() sdk.Context {
	return sdk.NewContext(e.cms, e.header(), false, e.logger)
}

// queryContext returns a context over a throwaway cache of the working
// state.
func (e *Engine) queryContext() sdk.Context {
	return sdk.NewContext(e.cms.CacheMultiStore(), e.header(), false, e.logger)
}

// DeliverMsg executes msg in the current block. A failing message leaves no
// trace in any store.
func (e *Engine) DeliverMsg(msg timedtypes.Msg) (*TxResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.deliver(msg)
}

// DeliverEnvelope decodes env and delivers the message.
func (e *Engine) DeliverEnvelope(env timedtypes.Envelope) (*TxResult, error) {
	msg, err := e.router.Decode(env)
	if err != nil {
		return nil, err
	}

	return e.DeliverMsg(msg)
}

func (e *Engine) deliver(msg timedtypes.Msg) (*TxResult, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	handler, err := e.router.Handler(msg)
	if err != nil {
		return nil, err
	}

	ctx := e.newContext()
	if err := timedtypes.Branch(ctx, func(ctx sdk.Context) error {
		return handler(ctx, msg)
	}); err != nil {
		e.logger.Debug("message failed", "type", msg.Type(), "signer", msg.GetSigner(), "err", err)
		return nil, err
	}

	events := FromSDKEvents(ctx.EventManager().Events())
	e.record(e.height, events)

	return &TxResult{Height: e.height, Events: events}, nil
}

// BeginBlock advances to block h, which must directly follow the last
// executed block, and runs every module's BeginBlocker.
func (e *Engine) BeginBlock(h uint64) ([]Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.beginBlock(h)
}

// NextBlock advances by one block.
func (e *Engine) NextBlock() (uint64, []Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := e.height + 1
	events, err := e.beginBlock(h)

	return h, events, err
}

func (e *Engine) beginBlock(h uint64) ([]Event, error) {
	if h != e.height+1 {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidHeight, "expected block %d, got %d", e.height+1, h)
	}

	// the previous block is final once the next one starts
	e.cms.Commit()

	e.height = h
	ctx := e.newContext()
	for _, m := range e.modules {
		if bb, ok := m.(timedtypes.HasBeginBlocker); ok {
			bb.BeginBlock(ctx)
		}
	}

	events := FromSDKEvents(ctx.EventManager().Events())
	e.record(h, events)

	return events, nil
}

// record adds events to the log and persists them after the events already
// stored for the block.
func (e *Engine) record(h uint64, events []Event) {
	e.events.Append(h, events)
	if e.store == nil || len(events) == 0 {
		return
	}

	encoded := make([][]byte, 0, len(events))
	for _, ev := range events {
		bz, err := json.Marshal(ev)
		if err != nil {
			e.logger.Error("failed to encode event", "height", h, "type", ev.Type, "err", err)
			return
		}
		encoded = append(encoded, bz)
	}

	if err := e.store.AppendEvents(h, encoded); err != nil {
		e.logger.Error("failed to persist events", "height", h, "err", err)
	}
}

// Events returns the events of block h, falling back to the store once the
// block has left the in-memory log.
func (e *Engine) Events(h uint64) ([]Event, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if events, ok := e.events.Get(h); ok {
		return events, true, nil
	}

	if e.store == nil {
		return nil, false, nil
	}

	stored, ok, err := e.store.Events(h)
	if err != nil || !ok {
		return nil, false, err
	}

	events := make([]Event, 0, len(stored))
	for _, bz := range stored {
		var ev Event
		if err := json.Unmarshal(bz, &ev); err != nil {
			return nil, false, err
		}
		events = append(events, ev)
	}

	return events, true, nil
}

// Query runs fn against the current state.
func (e *Engine) Query(fn func(ctx sdk.Context, q Queriers) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fn(e.queryContext(), Queriers{
		Keepers:      e.keepers,
		Auction:      auctionkeeper.NewQueryServer(e.keepers.AuctionKeeper),
		Rent:         rentkeeper.NewQueryServer(e.keepers.RentKeeper),
		Transmission: transmissionkeeper.NewQueryServer(e.keepers.TransmissionKeeper),
	})
}

// CheckInvariants runs every module invariant and reports the first broken one.
func (e *Engine) CheckInvariants() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.checkInvariants()
}

func (e *Engine) checkInvariants() error {
	return checkInvariants(e.modules, e.queryContext())
}

func checkInvariants(modules []timedtypes.AppModule, ctx sdk.Context) error {
	for _, m := range modules {
		hi, ok := m.(timedtypes.HasInvariants)
		if !ok {
			continue
		}

		if msg, broken := hi.Invariant()(ctx); broken {
			return errorsmod.Wrap(sdkerrors.ErrLogic, msg)
		}
	}

	return nil
}

// module returns the module registered under name.
func (e *Engine) module(name string) (timedtypes.AppModule, error) {
	for _, m := range e.modules {
		if m.Name() == name {
			return m, nil
		}
	}

	return nil, fmt.Errorf("unknown module %q", name)
}
