package types

import (
	"fmt"

	"github.com/tempo-labs/timed-contracts/deadline"
)

// GenesisState defines the transmission module's genesis state.
type GenesisState struct {
	Params        Params                   `json:"params"`
	Transmissions []RawTransmission        `json:"transmissions"`
	Queue         []deadline.Entry[uint32] `json:"queue"`
}

// NewGenesisState creates a new GenesisState instance.
func NewGenesisState(params Params, transmissions []RawTransmission, queue []deadline.Entry[uint32]) *GenesisState {
	return &GenesisState{
		Params:        params,
		Transmissions: transmissions,
		Queue:         queue,
	}
}

// DefaultGenesisState returns the default GenesisState instance.
func DefaultGenesisState() *GenesisState {
	return NewGenesisState(DefaultParams(), []RawTransmission{}, []deadline.Entry[uint32]{})
}

// Validate performs basic validation of the transmission module genesis
// state. Timed protocols must be queued exactly once at their block and
// on_consent protocols must not be queued.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	if err := deadline.ValidateEntries(int(gs.Params.SimultaneousTransmissionLimit), gs.Queue); err != nil {
		return fmt.Errorf("queue: %w", err)
	}

	queue := make(map[uint32]uint64, len(gs.Queue))
	for _, e := range gs.Queue {
		queue[e.ID] = e.DueAt
	}

	seen := make(map[uint32]struct{}, len(gs.Transmissions))
	timed := 0
	for _, raw := range gs.Transmissions {
		id, t, err := TransmissionFromRaw(raw)
		if err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate transmission for nft %d", id)
		}
		seen[id] = struct{}{}

		if err := t.Validate(gs.Params.MaxConsentListSize); err != nil {
			return fmt.Errorf("transmission %d: %w", id, err)
		}

		due, queued := queue[id]
		if !t.Protocol.IsTimed() {
			if queued {
				return fmt.Errorf("transmission %d has no block but is queued", id)
			}
			continue
		}

		timed++
		if !queued {
			return fmt.Errorf("transmission %d is not queued", id)
		}
		if due != t.Protocol.Block {
			return fmt.Errorf("transmission %d is due at %d but queued at %d", id, t.Protocol.Block, due)
		}
	}

	if timed != len(queue) {
		return fmt.Errorf("%d timed transmissions but %d queue entries", timed, len(queue))
	}

	return nil
}
