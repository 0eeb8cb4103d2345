package types

// auction module event types
const (
	EventTypeAuctionCreated          = "auction_created"
	EventTypeAuctionCancelled        = "auction_cancelled"
	EventTypeAuctionCompleted        = "auction_completed"
	EventTypeAuctionExtended         = "auction_extended"
	EventTypeBidAdded                = "bid_added"
	EventTypeBidRemoved              = "bid_removed"
	EventTypeBidDropped              = "bid_dropped"
	EventTypeBalanceClaimed          = "balance_claimed"
	EventTypeAuctionResolutionFailed = "auction_resolution_failed"

	AttributeKeyNFTID         = "nft_id"
	AttributeKeyCreator       = "creator"
	AttributeKeyBidder        = "bidder"
	AttributeKeyNewOwner      = "new_owner"
	AttributeKeyAmount        = "amount"
	AttributeKeyStartBlock    = "start_block"
	AttributeKeyEndBlock      = "end_block"
	AttributeKeyStartPrice    = "start_price"
	AttributeKeyBuyItPrice    = "buy_it_price"
	AttributeKeyMarketplaceID = "marketplace_id"
	AttributeKeyCommission    = "marketplace_cut"
	AttributeKeyRoyalty       = "royalty_cut"
	AttributeKeyReason        = "reason"
	AttributeKeyError         = "error"

	AttributeValueNoBids   = "no_bids"
	AttributeValueBuyItNow = "buy_it_now"
	AttributeValueCreator  = "creator"
	AttributeValueDeadline = "deadline"
	AttributeValueCategory = ModuleName
)
