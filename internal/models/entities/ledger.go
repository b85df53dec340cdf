package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"aeroclub/logbook/internal/constants"
)

// Payment is an append-only credit on a pilot's account. Never mutated
// after creation; corrections are new entries.
type Payment struct {
	ID      int64
	PilotID int64
	Amount  decimal.Decimal
	Label   string
	PaidAt  time.Time
}

// LedgerEntry is one signed movement on a pilot's balance: a payment
// (positive) or a settled flight cost debit (negative). Seq is the insertion
// order within the ledger and is the final tie-break when timestamps
// collide.
type LedgerEntry struct {
	ID       string
	PilotID  int64
	Kind     constants.LedgerEntryKind
	Amount   decimal.Decimal
	FlightID *int64
	Label    string
	At       time.Time
	Seq      int64
}

// Signed returns the entry's contribution to the running balance.
func (e LedgerEntry) Signed() decimal.Decimal {
	if e.Kind == constants.LedgerDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}
