package gorm

import (
	"time"

	"github.com/shopspring/decimal"

	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/models/entities"
)

// Payment rows are append-only; the service layer never updates or deletes
// them.
type Payment struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	PilotID   int64           `gorm:"column:pilot_id;not null;index"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	Label     string          `gorm:"column:label"`
	PaidAt    time.Time       `gorm:"column:paid_at;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) ToEntity() entities.Payment {
	return entities.Payment{
		ID:      p.ID,
		PilotID: p.PilotID,
		Amount:  p.Amount,
		Label:   p.Label,
		PaidAt:  p.PaidAt,
	}
}

// LedgerEntry is the unified append-only balance ledger: payments credit,
// settlement debits charge. Seq is a monotonically increasing insertion
// counter used as the final ordering tie-break.
type LedgerEntry struct {
	Seq      int64                     `gorm:"column:seq;primaryKey;autoIncrement"`
	ID       string                    `gorm:"column:id;uniqueIndex;type:uuid"`
	PilotID  int64                     `gorm:"column:pilot_id;not null;index"`
	Kind     constants.LedgerEntryKind `gorm:"column:kind;not null"`
	Amount   decimal.Decimal           `gorm:"column:amount;type:numeric(10,2);not null"`
	FlightID *int64                    `gorm:"column:flight_id"`
	Label    string                    `gorm:"column:label"`
	At       time.Time                 `gorm:"column:at;not null;index"`
}

// TableName specifies the table name for GORM
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

func (e *LedgerEntry) ToEntity() entities.LedgerEntry {
	return entities.LedgerEntry{
		ID:       e.ID,
		PilotID:  e.PilotID,
		Kind:     e.Kind,
		Amount:   e.Amount,
		FlightID: e.FlightID,
		Label:    e.Label,
		At:       e.At,
		Seq:      e.Seq,
	}
}

// LedgerToEntities maps stored ledger rows to engine value types.
func LedgerToEntities(rows []LedgerEntry) []entities.LedgerEntry {
	out := make([]entities.LedgerEntry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out
}
