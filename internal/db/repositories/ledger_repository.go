package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aeroclub/logbook/internal/constants"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new GORM-based ledger repository
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// RecordPayment appends a payment row and its mirroring ledger credit in one
// transaction. Payments are never mutated afterwards.
func (r *LedgerRepository) RecordPayment(ctx context.Context, payment *gormModels.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		entry := gormModels.LedgerEntry{
			ID:      uuid.New().String(),
			PilotID: payment.PilotID,
			Kind:    constants.LedgerPayment,
			Amount:  payment.Amount,
			Label:   payment.Label,
			At:      payment.PaidAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to insert ledger credit: %w", err)
		}
		return nil
	})
}

// AppendDebits writes the settlement debits for one flight and flips its
// settled flag atomically. Re-running for an already settled flight is a
// no-op by contract (the caller checks the flag inside the same snapshot).
func (r *LedgerRepository) AppendDebits(ctx context.Context, flightID int64, debits []gormModels.LedgerEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range debits {
			if debits[i].ID == "" {
				debits[i].ID = uuid.New().String()
			}
			debits[i].Kind = constants.LedgerDebit
			debits[i].FlightID = &flightID
		}
		if len(debits) > 0 {
			if err := tx.Create(&debits).Error; err != nil {
				return fmt.Errorf("failed to insert debits: %w", err)
			}
		}

		res := tx.Model(&gormModels.Flight{}).
			Where("id = ? AND settled = ?", flightID, false).
			Update("settled", true)
		if res.Error != nil {
			return fmt.Errorf("failed to mark flight settled: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("flight %d already settled", flightID)
		}
		return nil
	})
}

// ListEntriesByPilot returns the pilot's full ledger in insertion order.
func (r *LedgerRepository) ListEntriesByPilot(ctx context.Context, pilotID int64) ([]gormModels.LedgerEntry, error) {
	var entries []gormModels.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("pilot_id = ?", pilotID).
		Order("seq").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}
