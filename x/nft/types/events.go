package types

// nft module event types
const (
	EventTypeNFTCreated = "nft_created"

	AttributeKeyNFTID = "nft_id"
	AttributeKeyOwner = "owner"
)
