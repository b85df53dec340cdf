package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"aeroclub/logbook/internal/constants"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new GORM-based maintenance repository
func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) CreateDefect(ctx context.Context, defect *gormModels.Defect) error {
	if err := r.db.WithContext(ctx).Create(defect).Error; err != nil {
		return fmt.Errorf("failed to create defect: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) GetDefect(ctx context.Context, id int64) (*gormModels.Defect, error) {
	var defect gormModels.Defect
	err := r.db.WithContext(ctx).Preload("Repairs").First(&defect, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("defect %d not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to fetch defect: %w", err)
	}
	return &defect, nil
}

// ListOpenDefects returns defects still in the open or in-progress state,
// oldest first so the backlog surfaces in working order.
func (r *MaintenanceRepository) ListOpenDefects(ctx context.Context) ([]gormModels.Defect, error) {
	var defects []gormModels.Defect
	err := r.db.WithContext(ctx).
		Where("status IN ?", []constants.DefectStatus{constants.DefectOpen, constants.DefectInProgress}).
		Order("created_at").
		Find(&defects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list open defects: %w", err)
	}
	return defects, nil
}

// CountOpenDefects returns open/in-progress defect counts per aircraft.
func (r *MaintenanceRepository) CountOpenDefects(ctx context.Context) (map[int64]int, error) {
	type row struct {
		AircraftID int64
		N          int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&gormModels.Defect{}).
		Select("aircraft_id, COUNT(*) AS n").
		Where("status IN ?", []constants.DefectStatus{constants.DefectOpen, constants.DefectInProgress}).
		Group("aircraft_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count open defects: %w", err)
	}

	counts := make(map[int64]int, len(rows))
	for _, r := range rows {
		counts[r.AircraftID] = r.N
	}
	return counts, nil
}

func (r *MaintenanceRepository) UpdateDefectStatus(ctx context.Context, id int64, status constants.DefectStatus) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Defect{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update defect status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("defect %d not found: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *MaintenanceRepository) CreateRepair(ctx context.Context, repair *gormModels.Repair) error {
	if err := r.db.WithContext(ctx).Create(repair).Error; err != nil {
		return fmt.Errorf("failed to create repair: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) CreateInspection(ctx context.Context, inspection *gormModels.Inspection) error {
	if err := r.db.WithContext(ctx).Create(inspection).Error; err != nil {
		return fmt.Errorf("failed to create inspection: %w", err)
	}
	return nil
}

// ListInspections returns every performed inspection; the latest-per-
// aircraft selection is derived by the aggregator, never stored.
func (r *MaintenanceRepository) ListInspections(ctx context.Context) ([]gormModels.Inspection, error) {
	var inspections []gormModels.Inspection
	err := r.db.WithContext(ctx).Find(&inspections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inspections: %w", err)
	}
	return inspections, nil
}
