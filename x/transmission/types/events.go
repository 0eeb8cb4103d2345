package types

// transmission module event types
const (
	EventTypeTransmissionSet              = "transmission_set"
	EventTypeTransmissionRemoved          = "transmission_removed"
	EventTypeTransmissionTimerReset       = "transmission_timer_reset"
	EventTypeConsentAdded                 = "transmission_consent_added"
	EventTypeThresholdReached             = "transmission_threshold_reached"
	EventTypeTransmitted                  = "transmission_transmitted"
	EventTypeTransmissionExpired          = "transmission_expired"
	EventTypeTransmissionResolutionFailed = "transmission_resolution_failed"

	AttributeKeyNFTID     = "nft_id"
	AttributeKeyOwner     = "owner"
	AttributeKeyRecipient = "recipient"
	AttributeKeyProtocol  = "protocol"
	AttributeKeyBlock     = "block"
	AttributeKeyFrom      = "from"
	AttributeKeyFee       = "fee"
	AttributeKeyConsents  = "consents"
	AttributeKeyError     = "error"
)
