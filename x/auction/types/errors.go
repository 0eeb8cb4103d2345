package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/auction module sentinel errors
var (
	ErrAuctionNotFound               = errorsmod.Register(ModuleName, 2, "auction does not exist")
	ErrAuctionCannotStartInThePast   = errorsmod.Register(ModuleName, 3, "auction start block cannot be lower than the current block")
	ErrAuctionStartIsTooFarAway      = errorsmod.Register(ModuleName, 4, "auction start block is too far in the future")
	ErrAuctionTimeTooShort           = errorsmod.Register(ModuleName, 5, "auction duration is shorter than the minimum")
	ErrAuctionTimeTooLong            = errorsmod.Register(ModuleName, 6, "auction duration is longer than the maximum")
	ErrBuyItPriceTooLow              = errorsmod.Register(ModuleName, 7, "buy it price must be higher than the start price")
	ErrNotTheNFTOwner                = errorsmod.Register(ModuleName, 8, "caller does not own the nft")
	ErrNFTIsBusy                     = errorsmod.Register(ModuleName, 9, "nft is in a state that forbids auctions")
	ErrMarketplaceNotFound           = errorsmod.Register(ModuleName, 10, "marketplace does not exist")
	ErrMaxAuctionReached             = errorsmod.Register(ModuleName, 11, "maximum number of parallel auctions reached")
	ErrNotTheAuctionCreator          = errorsmod.Register(ModuleName, 12, "caller is not the auction creator")
	ErrCannotCancelAuctionInProgress = errorsmod.Register(ModuleName, 13, "cannot cancel an auction that already started")
	ErrAuctionNotExtended            = errorsmod.Register(ModuleName, 14, "cannot end an auction that was not extended")
	ErrCannotBidOnOwnAuction         = errorsmod.Register(ModuleName, 15, "creator cannot bid on its own auction")
	ErrAuctionNotStarted             = errorsmod.Register(ModuleName, 16, "auction has not started")
	ErrBidBelowStartPrice            = errorsmod.Register(ModuleName, 17, "bid must be higher than the start price")
	ErrBidBelowHighestBid            = errorsmod.Register(ModuleName, 18, "bid must be higher than the highest bid")
	ErrBidNotFound                   = errorsmod.Register(ModuleName, 19, "bid does not exist")
	ErrCannotRemoveBidAtEndOfAuction = errorsmod.Register(ModuleName, 20, "cannot remove a bid during the ending period")
	ErrBuyItNowNotSupported          = errorsmod.Register(ModuleName, 21, "auction does not support buy it now")
	ErrBidAboveBuyItPrice            = errorsmod.Register(ModuleName, 22, "a bid is already at or above the buy it price")
	ErrClaimNotFound                 = errorsmod.Register(ModuleName, 23, "nothing to claim")
	ErrNFTAlreadyAuctioned           = errorsmod.Register(ModuleName, 24, "nft is already in an auction")
	ErrDeadlineInconsistency         = errorsmod.Register(ModuleName, 25, "auction and deadline queue are out of sync")
	ErrAuctionEnded                  = errorsmod.Register(ModuleName, 26, "auction already reached its end block")
	ErrInvalidParams                 = errorsmod.Register(ModuleName, 27, "invalid params")
)
