package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/transmission module sentinel errors
var (
	ErrTransmissionNotFound                 = errorsmod.Register(ModuleName, 2, "nft has no transmission protocol")
	ErrNotTheNFTOwner                       = errorsmod.Register(ModuleName, 3, "caller does not own the nft")
	ErrNFTIsBusy                            = errorsmod.Register(ModuleName, 4, "nft is in a state that forbids transmissions")
	ErrInvalidRecipient                     = errorsmod.Register(ModuleName, 5, "recipient cannot be the owner")
	ErrTransmissionBlockInPast              = errorsmod.Register(ModuleName, 6, "transmission block must be in the future")
	ErrTransmissionTooFarAway               = errorsmod.Register(ModuleName, 7, "transmission block is too far away")
	ErrConsentListTooLong                   = errorsmod.Register(ModuleName, 8, "consent list is too long")
	ErrInvalidConsentList                   = errorsmod.Register(ModuleName, 9, "invalid consent list")
	ErrInvalidThreshold                     = errorsmod.Register(ModuleName, 10, "threshold must be between one and the consent list size")
	ErrInvalidCancellationPeriod            = errorsmod.Register(ModuleName, 11, "invalid cancellation period")
	ErrSimultaneousTransmissionLimitReached = errorsmod.Register(ModuleName, 12, "maximum number of simultaneous transmissions reached")
	ErrProtocolCannotBeCancelled            = errorsmod.Register(ModuleName, 13, "protocol cannot be cancelled")
	ErrCancellationPeriodOver               = errorsmod.Register(ModuleName, 14, "cancellation period is over")
	ErrProtocolTimerCannotBeReset           = errorsmod.Register(ModuleName, 15, "protocol timer cannot be reset")
	ErrConsentNotAllowed                    = errorsmod.Register(ModuleName, 16, "protocol does not take consents")
	ErrNotInConsentList                     = errorsmod.Register(ModuleName, 17, "caller is not in the consent list")
	ErrAlreadyConsented                     = errorsmod.Register(ModuleName, 18, "caller already consented")
	ErrQueueInconsistency                   = errorsmod.Register(ModuleName, 19, "transmissions and deadline queue are out of sync")
	ErrInvalidParams                        = errorsmod.Register(ModuleName, 20, "invalid params")
	ErrInvalidProtocol                      = errorsmod.Register(ModuleName, 21, "invalid transmission protocol")
	ErrFeeCollectorUnavailable              = errorsmod.Register(ModuleName, 22, "no fee collector available")
)
