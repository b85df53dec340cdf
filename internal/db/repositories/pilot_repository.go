package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	gormModels "aeroclub/logbook/internal/models/gorm"
)

type PilotRepository struct {
	db *gorm.DB
}

// NewPilotRepository creates a new GORM-based pilot repository
func NewPilotRepository(db *gorm.DB) *PilotRepository {
	return &PilotRepository{db: db}
}

func (r *PilotRepository) ListActive(ctx context.Context) ([]gormModels.Pilot, error) {
	var pilots []gormModels.Pilot
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("last_name").
		Find(&pilots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pilots: %w", err)
	}
	return pilots, nil
}

func (r *PilotRepository) GetByID(ctx context.Context, id int64) (*gormModels.Pilot, error) {
	var pilot gormModels.Pilot
	err := r.db.WithContext(ctx).First(&pilot, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("pilot %d not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to fetch pilot: %w", err)
	}
	return &pilot, nil
}

func (r *PilotRepository) Create(ctx context.Context, pilot *gormModels.Pilot) error {
	if err := r.db.WithContext(ctx).Create(pilot).Error; err != nil {
		return fmt.Errorf("failed to create pilot: %w", err)
	}
	return nil
}

func (r *PilotRepository) Update(ctx context.Context, pilot *gormModels.Pilot) error {
	if err := r.db.WithContext(ctx).Save(pilot).Error; err != nil {
		return fmt.Errorf("failed to update pilot: %w", err)
	}
	return nil
}

// SoftDelete deactivates a pilot profile and nulls the pilot link on any
// account that referenced it; the account itself survives.
func (r *PilotRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&gormModels.Pilot{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", now)
		if res.Error != nil {
			return fmt.Errorf("failed to delete pilot: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("pilot %d not found: %w", id, gorm.ErrRecordNotFound)
		}

		if err := tx.Model(&gormModels.UserAccount{}).
			Where("pilot_id = ?", id).
			Update("pilot_id", nil).Error; err != nil {
			return fmt.Errorf("failed to unlink account: %w", err)
		}
		return nil
	})
}

// ListFlights returns every flight the pilot crewed, soft-deleted rows
// included; aggregation filters them.
func (r *PilotRepository) ListFlights(ctx context.Context, pilotID int64) ([]gormModels.Flight, error) {
	var flights []gormModels.Flight
	err := r.db.WithContext(ctx).
		Joins("JOIN crew_assignments ca ON ca.flight_id = flights.id").
		Where("ca.pilot_id = ?", pilotID).
		Find(&flights).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list flights for pilot %d: %w", pilotID, err)
	}
	return flights, nil
}
