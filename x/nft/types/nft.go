package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// Flag names a single bit of NFT state.
type Flag uint8

const (
	FlagListed Flag = iota + 1
	FlagCapsule
	FlagSecret
	FlagDelegated
	FlagSoulbound
	FlagRented
	FlagTransmission
	FlagSyncing
)

var flagNames = map[Flag]string{
	FlagListed:       "listed",
	FlagCapsule:      "capsule",
	FlagSecret:       "secret",
	FlagDelegated:    "delegated",
	FlagSoulbound:    "soulbound",
	FlagRented:       "rented",
	FlagTransmission: "transmission",
	FlagSyncing:      "syncing",
}

func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}

	return fmt.Sprintf("flag(%d)", uint8(f))
}

// NFTState holds the lifecycle flags of an NFT.
type NFTState struct {
	IsListed       bool `json:"is_listed"`
	IsCapsule      bool `json:"is_capsule"`
	IsSecret       bool `json:"is_secret"`
	IsDelegated    bool `json:"is_delegated"`
	IsSoulbound    bool `json:"is_soulbound"`
	IsRented       bool `json:"is_rented"`
	IsTransmission bool `json:"is_transmission"`
	IsSyncing      bool `json:"is_syncing"`
}

func (s *NFTState) field(f Flag) (*bool, error) {
	switch f {
	case FlagListed:
		return &s.IsListed, nil
	case FlagCapsule:
		return &s.IsCapsule, nil
	case FlagSecret:
		return &s.IsSecret, nil
	case FlagDelegated:
		return &s.IsDelegated, nil
	case FlagSoulbound:
		return &s.IsSoulbound, nil
	case FlagRented:
		return &s.IsRented, nil
	case FlagTransmission:
		return &s.IsTransmission, nil
	case FlagSyncing:
		return &s.IsSyncing, nil
	default:
		return nil, ErrUnknownFlag
	}
}

// Set updates a single flag.
func (s *NFTState) Set(f Flag, value bool) error {
	ptr, err := s.field(f)
	if err != nil {
		return err
	}

	*ptr = value
	return nil
}

// Has reports whether the flag is set. Unknown flags are never set.
func (s NFTState) Has(f Flag) bool {
	ptr, err := s.field(f)
	if err != nil {
		return false
	}

	return *ptr
}

// FirstOf returns the first flag from flags that is set.
func (s NFTState) FirstOf(flags ...Flag) (Flag, bool) {
	for _, f := range flags {
		if s.Has(f) {
			return f, true
		}
	}

	return 0, false
}

// NFT is a single non fungible token.
type NFT struct {
	ID       uint32             `json:"id"`
	Owner    string             `json:"owner"`
	Creator  string             `json:"creator"`
	Offchain string             `json:"offchain_data"`
	Royalty  timedtypes.Permill `json:"royalty"`
	State    NFTState           `json:"state"`
}

// Validate performs basic validation of an NFT record.
func (n NFT) Validate() error {
	if _, err := sdk.AccAddressFromBech32(n.Owner); err != nil {
		return fmt.Errorf("nft %d: invalid owner: %w", n.ID, err)
	}
	if _, err := sdk.AccAddressFromBech32(n.Creator); err != nil {
		return fmt.Errorf("nft %d: invalid creator: %w", n.ID, err)
	}

	return n.Royalty.Validate()
}
