package types

import (
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type (
	// AppModule is implemented by every module hosted by the engine.
	AppModule interface {
		Name() string
		// StoreKey is the key of the store the module keeps its state in.
		StoreKey() *storetypes.KVStoreKey
		DefaultGenesis() json.RawMessage
		ValidateGenesis(bz json.RawMessage) error
		InitGenesis(ctx sdk.Context, bz json.RawMessage) error
		ExportGenesis(ctx sdk.Context) (json.RawMessage, error)
		RegisterMsgs(router *Router)
	}

	// HasBeginBlocker is implemented by modules that advance on every block.
	HasBeginBlocker interface {
		BeginBlock(ctx sdk.Context)
	}

	// HasInvariants is implemented by modules that can verify their state.
	HasInvariants interface {
		Invariant() sdk.Invariant
	}
)

// UnmarshalGenesis decodes bz and validates it.
func UnmarshalGenesis[G interface{ Validate() error }](module string, bz json.RawMessage, gs *G) error {
	if err := json.Unmarshal(bz, gs); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", module, err)
	}

	return (*gs).Validate()
}

// MustMarshalJSON encodes v and panics on failure.
func MustMarshalJSON(v any) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return bz
}
