package model

import "github.com/shopspring/decimal"

// Entry is implemented by records that appear in ranked and windowed
// display views: donations, donors, and team participants.
type Entry interface {
	// EntryName is the display name shown in output fragments.
	EntryName() string
	// EntryAmount returns the record's amount and whether it was present
	// in the source JSON. Records without an amount are excluded from
	// amount-ranked views.
	EntryAmount() (decimal.Decimal, bool)
	// EntryMessage returns the attached message, or "" for record types
	// that carry none.
	EntryMessage() string
}
