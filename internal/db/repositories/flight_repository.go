package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	gormModels "aeroclub/logbook/internal/models/gorm"
)

type FlightRepository struct {
	db *gorm.DB
}

// NewFlightRepository creates a new GORM-based flight repository
func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// GetWithCrew fetches a flight together with its full roster.
func (r *FlightRepository) GetWithCrew(ctx context.Context, id int64) (*gormModels.Flight, error) {
	var flight gormModels.Flight
	err := r.db.WithContext(ctx).
		Preload("CrewAssignments").
		First(&flight, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("flight %d not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to fetch flight: %w", err)
	}
	return &flight, nil
}

// CreateWithCrew inserts the flight, its roster and an optional defect
// reported with the entry in one transaction. The caller has already
// validated the record; a failure here rolls everything back so no partial
// roster is ever observable.
func (r *FlightRepository) CreateWithCrew(ctx context.Context, flight *gormModels.Flight, crew []gormModels.CrewAssignment, defect *gormModels.Defect) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(flight).Error; err != nil {
			return fmt.Errorf("failed to insert flight: %w", err)
		}
		for i := range crew {
			crew[i].FlightID = flight.ID
		}
		if len(crew) > 0 {
			if err := tx.Create(&crew).Error; err != nil {
				return fmt.Errorf("failed to insert crew: %w", err)
			}
		}
		if defect != nil {
			defect.AircraftID = flight.AircraftID
			defect.FlightID = &flight.ID
			if err := tx.Create(defect).Error; err != nil {
				return fmt.Errorf("failed to insert defect: %w", err)
			}
		}
		return nil
	})
}

// UpdateWithCrew rewrites the flight and replaces the roster with a
// delete-and-insert, which is simpler and more robust than diffing the
// existing assignments.
func (r *FlightRepository) UpdateWithCrew(ctx context.Context, flight *gormModels.Flight, crew []gormModels.CrewAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(flight).Error; err != nil {
			return fmt.Errorf("failed to update flight: %w", err)
		}
		if err := tx.Where("flight_id = ?", flight.ID).
			Delete(&gormModels.CrewAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to clear crew: %w", err)
		}
		for i := range crew {
			crew[i].FlightID = flight.ID
		}
		if len(crew) > 0 {
			if err := tx.Create(&crew).Error; err != nil {
				return fmt.Errorf("failed to insert crew: %w", err)
			}
		}
		return nil
	})
}

func (r *FlightRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now)
	if res.Error != nil {
		return fmt.Errorf("failed to delete flight: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("flight %d not found: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// ListUnsettled returns accepted, live flights that have not produced
// ledger debits yet, rosters preloaded for the settlement pass.
func (r *FlightRepository) ListUnsettled(ctx context.Context) ([]gormModels.Flight, error) {
	var flights []gormModels.Flight
	err := r.db.WithContext(ctx).
		Preload("CrewAssignments").
		Where("settled = ? AND deleted_at IS NULL", false).
		Order("id").
		Find(&flights).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled flights: %w", err)
	}
	return flights, nil
}

// List returns non-deleted flights newest first, rosters preloaded.
func (r *FlightRepository) List(ctx context.Context, limit int) ([]gormModels.Flight, error) {
	q := r.db.WithContext(ctx).
		Preload("CrewAssignments").
		Where("deleted_at IS NULL").
		Order("start_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var flights []gormModels.Flight
	if err := q.Find(&flights).Error; err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	return flights, nil
}
