package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ProtocolKind names how an NFT gets transmitted to its recipient.
type ProtocolKind string

const (
	// ProtocolAtBlock transmits at a fixed block.
	ProtocolAtBlock ProtocolKind = "at_block"
	// ProtocolAtBlockWithReset transmits at a block the owner can push back.
	ProtocolAtBlockWithReset ProtocolKind = "at_block_with_reset"
	// ProtocolOnConsent transmits once enough of the consent list agreed.
	ProtocolOnConsent ProtocolKind = "on_consent"
	// ProtocolOnConsentAtBlock transmits at a block if enough of the consent
	// list agreed by then, and expires otherwise.
	ProtocolOnConsentAtBlock ProtocolKind = "on_consent_at_block"
)

// ProtocolKinds lists every protocol kind.
var ProtocolKinds = []ProtocolKind{
	ProtocolAtBlock,
	ProtocolAtBlockWithReset,
	ProtocolOnConsent,
	ProtocolOnConsentAtBlock,
}

// CancellationKind tells when the owner may remove a protocol.
type CancellationKind string

const (
	CancellationNone       CancellationKind = "none"
	CancellationUntilBlock CancellationKind = "until_block"
	CancellationAnytime    CancellationKind = "anytime"
)

type (
	// TransmissionProtocol is the trigger of a transmission.
	TransmissionProtocol struct {
		Kind ProtocolKind `json:"kind"`
		// Block is the transmission block of the timed kinds.
		Block uint64 `json:"block,omitempty"`
		// ConsentList holds the accounts whose consent counts.
		ConsentList []string `json:"consent_list,omitempty"`
		// Threshold is the number of consents needed.
		Threshold uint32 `json:"threshold,omitempty"`
	}

	// CancellationPeriod tells until when the protocol can be removed.
	CancellationPeriod struct {
		Kind CancellationKind `json:"kind"`
		// Block ends an until_block period.
		Block uint64 `json:"block,omitempty"`
	}

	// TransmissionData is a protocol set on an NFT.
	TransmissionData struct {
		Owner        string               `json:"owner"`
		Recipient    string               `json:"recipient"`
		Protocol     TransmissionProtocol `json:"protocol"`
		Cancellation CancellationPeriod   `json:"cancellation"`
		// Consents holds the accounts that consented so far, in order.
		Consents []string `json:"consents,omitempty"`
	}

	// RawTransmission is the flat genesis form of a transmission.
	RawTransmission struct {
		NFTID             uint32           `json:"nft_id"`
		Owner             string           `json:"owner"`
		Recipient         string           `json:"recipient"`
		Protocol          ProtocolKind     `json:"protocol"`
		Block             uint64           `json:"block,omitempty"`
		ConsentList       []string         `json:"consent_list,omitempty"`
		Threshold         uint32           `json:"threshold,omitempty"`
		Cancellation      CancellationKind `json:"cancellation"`
		CancellationBlock uint64           `json:"cancellation_block,omitempty"`
		Consents          []string         `json:"consents,omitempty"`
	}
)

// AtBlock returns a protocol transmitting at block.
func AtBlock(block uint64) TransmissionProtocol {
	return TransmissionProtocol{Kind: ProtocolAtBlock, Block: block}
}

// AtBlockWithReset returns a protocol transmitting at block unless reset.
func AtBlockWithReset(block uint64) TransmissionProtocol {
	return TransmissionProtocol{Kind: ProtocolAtBlockWithReset, Block: block}
}

// OnConsent returns a protocol transmitting once threshold accounts of list consented.
func OnConsent(list []string, threshold uint32) TransmissionProtocol {
	return TransmissionProtocol{Kind: ProtocolOnConsent, ConsentList: list, Threshold: threshold}
}

// OnConsentAtBlock returns a protocol transmitting at block if threshold
// accounts of list consented by then.
func OnConsentAtBlock(list []string, threshold uint32, block uint64) TransmissionProtocol {
	return TransmissionProtocol{Kind: ProtocolOnConsentAtBlock, ConsentList: list, Threshold: threshold, Block: block}
}

// NoCancellation forbids removing the protocol.
func NoCancellation() CancellationPeriod {
	return CancellationPeriod{Kind: CancellationNone}
}

// CancellableUntil allows removing the protocol before block.
func CancellableUntil(block uint64) CancellationPeriod {
	return CancellationPeriod{Kind: CancellationUntilBlock, Block: block}
}

// CancellableAnytime allows removing the protocol at any time.
func CancellableAnytime() CancellationPeriod {
	return CancellationPeriod{Kind: CancellationAnytime}
}

// IsTimed reports whether the protocol has a transmission block, and so a
// deadline queue entry.
func (p TransmissionProtocol) IsTimed() bool {
	return p.Kind == ProtocolAtBlock || p.Kind == ProtocolAtBlockWithReset || p.Kind == ProtocolOnConsentAtBlock
}

// TakesConsents reports whether the protocol is driven by a consent list.
func (p TransmissionProtocol) TakesConsents() bool {
	return p.Kind == ProtocolOnConsent || p.Kind == ProtocolOnConsentAtBlock
}

// InConsentList reports whether account may consent.
func (p TransmissionProtocol) InConsentList(account string) bool {
	for _, a := range p.ConsentList {
		if a == account {
			return true
		}
	}

	return false
}

// Validate checks the protocol shape. Block bounds depend on the current
// block and are checked by the keeper.
func (p TransmissionProtocol) Validate(maxConsentListSize uint32) error {
	switch p.Kind {
	case ProtocolAtBlock, ProtocolAtBlockWithReset:
		if len(p.ConsentList) > 0 || p.Threshold != 0 {
			return errorsmod.Wrapf(ErrInvalidProtocol, "%s takes no consent list", p.Kind)
		}
	case ProtocolOnConsent, ProtocolOnConsentAtBlock:
		if p.Kind == ProtocolOnConsent && p.Block != 0 {
			return errorsmod.Wrap(ErrInvalidProtocol, "on_consent takes no block")
		}
		if err := p.validateConsentList(maxConsentListSize); err != nil {
			return err
		}
	default:
		return errorsmod.Wrapf(ErrInvalidProtocol, "unknown protocol %q", p.Kind)
	}

	return nil
}

func (p TransmissionProtocol) validateConsentList(maxSize uint32) error {
	if len(p.ConsentList) == 0 {
		return errorsmod.Wrap(ErrInvalidConsentList, "consent list is empty")
	}
	if maxSize != 0 && len(p.ConsentList) > int(maxSize) {
		return errorsmod.Wrapf(ErrConsentListTooLong, "%d > %d", len(p.ConsentList), maxSize)
	}

	seen := make(map[string]struct{}, len(p.ConsentList))
	for _, a := range p.ConsentList {
		if _, err := sdk.AccAddressFromBech32(a); err != nil {
			return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "consent list: %s", err)
		}
		if _, ok := seen[a]; ok {
			return errorsmod.Wrapf(ErrInvalidConsentList, "duplicate account %s", a)
		}
		seen[a] = struct{}{}
	}

	if p.Threshold == 0 || int(p.Threshold) > len(p.ConsentList) {
		return errorsmod.Wrapf(ErrInvalidThreshold, "threshold %d for %d accounts", p.Threshold, len(p.ConsentList))
	}

	return nil
}

// Validate checks the cancellation period against the protocol it guards.
func (c CancellationPeriod) Validate(protocol TransmissionProtocol) error {
	switch c.Kind {
	case CancellationNone, CancellationAnytime:
		if c.Block != 0 {
			return errorsmod.Wrapf(ErrInvalidCancellationPeriod, "%s takes no block", c.Kind)
		}
	case CancellationUntilBlock:
		if c.Block == 0 {
			return errorsmod.Wrap(ErrInvalidCancellationPeriod, "until_block needs a block")
		}
		if protocol.IsTimed() && c.Block > protocol.Block {
			return errorsmod.Wrapf(ErrInvalidCancellationPeriod, "cancellation block %d is after transmission block %d", c.Block, protocol.Block)
		}
	default:
		return errorsmod.Wrapf(ErrInvalidCancellationPeriod, "unknown cancellation %q", c.Kind)
	}

	return nil
}

// CanCancel reports whether the protocol can be removed at block now.
func (c CancellationPeriod) CanCancel(now uint64) error {
	switch c.Kind {
	case CancellationAnytime:
		return nil
	case CancellationUntilBlock:
		if now >= c.Block {
			return errorsmod.Wrapf(ErrCancellationPeriodOver, "ended at block %d", c.Block)
		}
		return nil
	default:
		return ErrProtocolCannotBeCancelled
	}
}

// ThresholdReached reports whether enough accounts consented.
func (t TransmissionData) ThresholdReached() bool {
	return t.Protocol.TakesConsents() && len(t.Consents) >= int(t.Protocol.Threshold)
}

// HasConsented reports whether account already consented.
func (t TransmissionData) HasConsented(account string) bool {
	for _, a := range t.Consents {
		if a == account {
			return true
		}
	}

	return false
}

// Clone returns a deep copy of t.
func (t TransmissionData) Clone() TransmissionData {
	t.Protocol.ConsentList = append([]string(nil), t.Protocol.ConsentList...)
	t.Consents = append([]string(nil), t.Consents...)

	return t
}

// Validate checks the transmission as stored. Consents must come from the
// consent list without repetition.
func (t TransmissionData) Validate(maxConsentListSize uint32) error {
	if _, err := sdk.AccAddressFromBech32(t.Owner); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "owner: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(t.Recipient); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "recipient: %s", err)
	}
	if t.Owner == t.Recipient {
		return ErrInvalidRecipient
	}
	if err := t.Protocol.Validate(maxConsentListSize); err != nil {
		return err
	}
	if t.Protocol.IsTimed() && t.Protocol.Block == 0 {
		return errorsmod.Wrapf(ErrInvalidProtocol, "%s needs a block", t.Protocol.Kind)
	}
	if err := t.Cancellation.Validate(t.Protocol); err != nil {
		return err
	}

	if len(t.Consents) > 0 && !t.Protocol.TakesConsents() {
		return errorsmod.Wrapf(ErrConsentNotAllowed, "%s has consents", t.Protocol.Kind)
	}
	seen := make(map[string]struct{}, len(t.Consents))
	for _, a := range t.Consents {
		if !t.Protocol.InConsentList(a) {
			return errorsmod.Wrapf(ErrNotInConsentList, "consent from %s", a)
		}
		if _, ok := seen[a]; ok {
			return errorsmod.Wrapf(ErrAlreadyConsented, "consent from %s", a)
		}
		seen[a] = struct{}{}
	}

	// on_consent transmits as soon as the threshold is reached, so a stored
	// one never reached it
	if t.Protocol.Kind == ProtocolOnConsent && t.ThresholdReached() {
		return errorsmod.Wrap(ErrInvalidProtocol, "on_consent threshold already reached")
	}

	return nil
}

// ToRaw returns the genesis form of the transmission of nftID.
func (t TransmissionData) ToRaw(nftID uint32) RawTransmission {
	t = t.Clone()

	return RawTransmission{
		NFTID:             nftID,
		Owner:             t.Owner,
		Recipient:         t.Recipient,
		Protocol:          t.Protocol.Kind,
		Block:             t.Protocol.Block,
		ConsentList:       t.Protocol.ConsentList,
		Threshold:         t.Protocol.Threshold,
		Cancellation:      t.Cancellation.Kind,
		CancellationBlock: t.Cancellation.Block,
		Consents:          t.Consents,
	}
}

// TransmissionFromRaw rebuilds a transmission from its genesis form.
func TransmissionFromRaw(raw RawTransmission) (uint32, TransmissionData, error) {
	t := TransmissionData{
		Owner:     raw.Owner,
		Recipient: raw.Recipient,
		Protocol: TransmissionProtocol{
			Kind:        raw.Protocol,
			Block:       raw.Block,
			ConsentList: raw.ConsentList,
			Threshold:   raw.Threshold,
		},
		Cancellation: CancellationPeriod{
			Kind:  raw.Cancellation,
			Block: raw.CancellationBlock,
		},
		Consents: raw.Consents,
	}

	if !t.Protocol.IsTimed() && !t.Protocol.TakesConsents() {
		return 0, TransmissionData{}, fmt.Errorf("transmission %d: unknown protocol %q", raw.NFTID, raw.Protocol)
	}

	return raw.NFTID, t.Clone(), nil
}
