package types

// marketplace module event types
const (
	EventTypeMarketplaceCreated = "marketplace_created"

	AttributeKeyMarketplaceID = "marketplace_id"
	AttributeKeyOwner         = "owner"
)
