package types

// balances module event types
const (
	EventTypeTransfer   = "transfer"
	EventTypeDustBurned = "dust_burned"

	AttributeKeyFrom    = "from"
	AttributeKeyTo      = "to"
	AttributeKeyAmount  = "amount"
	AttributeKeyAccount = "account"
)
