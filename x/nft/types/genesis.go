package types

import "fmt"

// GenesisState defines the nft module's genesis state.
type GenesisState struct {
	NextID uint32 `json:"next_id"`
	NFTs   []NFT  `json:"nfts"`
}

// DefaultGenesisState returns the default GenesisState instance.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{NFTs: []NFT{}}
}

// Validate performs basic validation of the nft module genesis state.
func (gs GenesisState) Validate() error {
	seen := make(map[uint32]struct{}, len(gs.NFTs))
	for _, n := range gs.NFTs {
		if err := n.Validate(); err != nil {
			return err
		}
		if _, ok := seen[n.ID]; ok {
			return fmt.Errorf("duplicate nft id %d", n.ID)
		}
		if n.ID >= gs.NextID {
			return fmt.Errorf("nft id %d is not below next id %d", n.ID, gs.NextID)
		}
		seen[n.ID] = struct{}{}
	}

	return nil
}
