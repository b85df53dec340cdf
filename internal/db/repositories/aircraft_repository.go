package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	gormModels "aeroclub/logbook/internal/models/gorm"
)

type AircraftRepository struct {
	db *gorm.DB
}

// NewAircraftRepository creates a new GORM-based aircraft repository
func NewAircraftRepository(db *gorm.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// ListActive returns the fleet excluding soft-deleted airframes.
func (r *AircraftRepository) ListActive(ctx context.Context) ([]gormModels.Aircraft, error) {
	var fleet []gormModels.Aircraft
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("registration").
		Find(&fleet).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list aircraft: %w", err)
	}
	return fleet, nil
}

// GetByID fetches one airframe, soft-deleted ones included so historical
// flights can still resolve their aircraft.
func (r *AircraftRepository) GetByID(ctx context.Context, id int64) (*gormModels.Aircraft, error) {
	var aircraft gormModels.Aircraft
	err := r.db.WithContext(ctx).First(&aircraft, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("aircraft %d not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}
	return &aircraft, nil
}

func (r *AircraftRepository) Create(ctx context.Context, aircraft *gormModels.Aircraft) error {
	if err := r.db.WithContext(ctx).Create(aircraft).Error; err != nil {
		return fmt.Errorf("failed to create aircraft: %w", err)
	}
	return nil
}

func (r *AircraftRepository) Update(ctx context.Context, aircraft *gormModels.Aircraft) error {
	if err := r.db.WithContext(ctx).Save(aircraft).Error; err != nil {
		return fmt.Errorf("failed to update aircraft: %w", err)
	}
	return nil
}

// SoftDelete withdraws an airframe from the fleet. Rows are never hard
// deleted so flight history keeps its references.
func (r *AircraftRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&gormModels.Aircraft{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now)
	if res.Error != nil {
		return fmt.Errorf("failed to delete aircraft: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("aircraft %d not found: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// ListFlights returns all flights for an airframe, soft-deleted flights
// included; aggregation filters them.
func (r *AircraftRepository) ListFlights(ctx context.Context, aircraftID int64) ([]gormModels.Flight, error) {
	var flights []gormModels.Flight
	err := r.db.WithContext(ctx).
		Where("aircraft_id = ?", aircraftID).
		Find(&flights).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list flights for aircraft %d: %w", aircraftID, err)
	}
	return flights, nil
}
