package types

// rent module event types
const (
	EventTypeContractCreated             = "contract_created"
	EventTypeContractCancelled           = "contract_cancelled"
	EventTypeContractStarted             = "contract_started"
	EventTypeContractRevoked             = "contract_revoked"
	EventTypeContractOffered             = "contract_offered"
	EventTypeContractOfferRetracted      = "contract_offer_retracted"
	EventTypeContractTermsChanged        = "contract_subscription_terms_changed"
	EventTypeContractTermsAccepted       = "contract_subscription_terms_accepted"
	EventTypeContractSubscriptionRenewed = "contract_subscription_renewed"
	EventTypeContractEnded               = "contract_ended"
	EventTypeContractExpired             = "contract_available_expired"
	EventTypeContractResolutionFailed    = "contract_resolution_failed"

	AttributeKeyNFTID       = "nft_id"
	AttributeKeyRenter      = "renter"
	AttributeKeyRentee      = "rentee"
	AttributeKeyRevokedBy   = "revoked_by"
	AttributeKeyDuration    = "duration"
	AttributeKeyRentFee     = "rent_fee"
	AttributeKeyPeriod      = "period"
	AttributeKeyMaxDuration = "max_duration"
	AttributeKeyNextRenewal = "next_renewal"
	AttributeKeyReason      = "reason"
	AttributeKeyError       = "error"

	AttributeValueFixedEnd      = "fixed_end"
	AttributeValueMaxDuration   = "max_duration"
	AttributeValueTermsRejected = "terms_not_accepted"
	AttributeValuePaymentFailed = "payment_failed"
)
