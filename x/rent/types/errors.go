package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/rent module sentinel errors
var (
	ErrContractNotFound               = errorsmod.Register(ModuleName, 2, "rent contract does not exist")
	ErrNotTheNFTOwner                 = errorsmod.Register(ModuleName, 3, "caller does not own the nft")
	ErrNFTIsBusy                      = errorsmod.Register(ModuleName, 4, "nft is in a state that forbids renting")
	ErrContractAlreadyExists          = errorsmod.Register(ModuleName, 5, "nft already has a rent contract")
	ErrMaxSimultaneousContractReached = errorsmod.Register(ModuleName, 6, "maximum number of simultaneous contracts reached")
	ErrInvalidDuration                = errorsmod.Register(ModuleName, 7, "invalid contract duration")
	ErrInvalidFee                     = errorsmod.Register(ModuleName, 8, "invalid fee")
	ErrFlexibleFeeOnSubscription      = errorsmod.Register(ModuleName, 9, "flexible cancellation fees need a fixed duration")
	ErrNFTFeeOnSubscription           = errorsmod.Register(ModuleName, 10, "subscriptions must be paid in tokens")
	ErrFeeNFTNotOwned                 = errorsmod.Register(ModuleName, 11, "caller does not own the fee nft")
	ErrFeeNFTIsBusy                   = errorsmod.Register(ModuleName, 12, "fee nft is in a state that forbids transfers")
	ErrAllowListTooLong               = errorsmod.Register(ModuleName, 13, "allow list is too long")
	ErrNotTheRenter                   = errorsmod.Register(ModuleName, 14, "caller is not the renter")
	ErrNotAParty                      = errorsmod.Register(ModuleName, 15, "caller is neither renter nor rentee")
	ErrContractHasStarted             = errorsmod.Register(ModuleName, 16, "contract has already started")
	ErrContractHasNotStarted          = errorsmod.Register(ModuleName, 17, "contract has not started")
	ErrCannotRentOwnContract          = errorsmod.Register(ModuleName, 18, "renter cannot rent its own contract")
	ErrNotAuthorizedForContract       = errorsmod.Register(ModuleName, 19, "caller is not on the contract allow list")
	ErrMaxOfferReached                = errorsmod.Register(ModuleName, 20, "maximum number of offers reached")
	ErrOfferAlreadyExists             = errorsmod.Register(ModuleName, 21, "caller already made an offer")
	ErrOfferNotFound                  = errorsmod.Register(ModuleName, 22, "offer does not exist")
	ErrManualAcceptanceOnly           = errorsmod.Register(ModuleName, 23, "offers exist only for manual acceptance contracts")
	ErrRenterCannotRevoke             = errorsmod.Register(ModuleName, 24, "renter is not allowed to revoke this contract")
	ErrContractTermsNotChangeable     = errorsmod.Register(ModuleName, 25, "contract terms cannot be changed")
	ErrNotTheRentee                   = errorsmod.Register(ModuleName, 26, "caller is not the rentee")
	ErrTermsMismatch                  = errorsmod.Register(ModuleName, 27, "terms do not match the contract")
	ErrTermsAlreadyAccepted           = errorsmod.Register(ModuleName, 28, "terms are already accepted")
	ErrQueueInconsistency             = errorsmod.Register(ModuleName, 29, "rent contract and deadline queues are out of sync")
	ErrInvalidParams                  = errorsmod.Register(ModuleName, 30, "invalid params")
	ErrCannotUseRentedNFTAsFee        = errorsmod.Register(ModuleName, 31, "the rented nft cannot be used as a fee")
)
