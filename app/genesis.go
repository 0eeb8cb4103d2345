package app

import (
	"encoding/json"
	"fmt"
	"os"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// GenesisDoc is the full state of an Engine.
type GenesisDoc struct {
	ChainID string `json:"chain_id"`
	// Height is the last block executed before the state was exported.
	Height   uint64                     `json:"height"`
	AppState map[string]json.RawMessage `json:"app_state"`
}

// ReadGenesisDoc reads a genesis document from path.
func ReadGenesisDoc(path string) (*GenesisDoc, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal genesis doc: %w", err)
	}

	return &doc, nil
}

// DefaultGenesis returns the default state of every module.
func (e *Engine) DefaultGenesis() *GenesisDoc {
	doc := &GenesisDoc{
		ChainID:  e.opts.ChainID,
		AppState: make(map[string]json.RawMessage, len(e.modules)),
	}
	for _, m := range e.modules {
		doc.AppState[m.Name()] = m.DefaultGenesis()
	}

	return doc
}

// ValidateGenesis checks the state of every module in doc. A missing module
// state means the module's default.
func (e *Engine) ValidateGenesis(doc *GenesisDoc) error {
	for name := range doc.AppState {
		if _, err := e.module(name); err != nil {
			return err
		}
	}

	for _, m := range e.modules {
		bz, ok := doc.AppState[m.Name()]
		if !ok {
			continue
		}

		if err := m.ValidateGenesis(bz); err != nil {
			return fmt.Errorf("%s: %w", m.Name(), err)
		}
	}

	return nil
}

// InitGenesis replaces the state of every module with doc. The resulting
// state must hold every module invariant.
func (e *Engine) InitGenesis(doc *GenesisDoc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.initGenesis(doc)
}

// initGenesis loads doc into a fresh multistore, which replaces the working
// state only once every module is initialised and every invariant holds.
func (e *Engine) initGenesis(doc *GenesisDoc) error {
	if err := e.ValidateGenesis(doc); err != nil {
		return err
	}

	cms, err := e.newMultiStore()
	if err != nil {
		return err
	}

	header := e.header()
	header.Height = int64(doc.Height)
	ctx := sdk.NewContext(cms, header, false, e.logger)

	if err := initModules(ctx, e.modules, doc); err != nil {
		return err
	}
	if err := checkInvariants(e.modules, ctx); err != nil {
		return err
	}

	cms.Commit()

	e.cms = cms
	e.height = doc.Height
	e.logger.Info("initialized genesis", "chain_id", doc.ChainID, "height", doc.Height)

	return nil
}

func initModules(ctx sdk.Context, modules []timedtypes.AppModule, doc *GenesisDoc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "failed to init genesis: %v", r)
		}
	}()

	for _, m := range modules {
		bz, ok := doc.AppState[m.Name()]
		if !ok {
			bz = m.DefaultGenesis()
		}

		if err := m.InitGenesis(ctx, bz); err != nil {
			return fmt.Errorf("%s: %w", m.Name(), err)
		}
	}

	return nil
}

// ExportGenesis returns the current state of every module.
func (e *Engine) ExportGenesis() (*GenesisDoc, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.exportGenesis()
}

func (e *Engine) exportGenesis() (*GenesisDoc, error) {
	doc := &GenesisDoc{
		ChainID:  e.opts.ChainID,
		Height:   e.height,
		AppState: make(map[string]json.RawMessage, len(e.modules)),
	}

	ctx := e.queryContext()
	for _, m := range e.modules {
		bz, err := m.ExportGenesis(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Name(), err)
		}
		doc.AppState[m.Name()] = bz
	}

	return doc, nil
}

// ModuleGenesis returns the exported state of a single module.
func (e *Engine) ModuleGenesis(name string) (json.RawMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.module(name)
	if err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrNotFound, err.Error())
	}

	return m.ExportGenesis(e.queryContext())
}
