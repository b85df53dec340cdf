package gorm

import (
	"time"

	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/models/entities"
)

type Defect struct {
	ID          int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	AircraftID  int64                  `gorm:"column:aircraft_id;not null;index"`
	FlightID    *int64                 `gorm:"column:flight_id"`
	Description string                 `gorm:"column:description;not null"`
	Status      constants.DefectStatus `gorm:"column:status;type:defect_status;default:open"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Repairs []Repair `gorm:"foreignKey:DefectID"`
}

// TableName specifies the table name for GORM
func (Defect) TableName() string {
	return "defects"
}

func (d *Defect) ToEntity() entities.Defect {
	return entities.Defect{
		ID:          d.ID,
		AircraftID:  d.AircraftID,
		FlightID:    d.FlightID,
		Description: d.Description,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type Repair struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DefectID      int64     `gorm:"column:defect_id;not null;index"`
	MechanicID    int64     `gorm:"column:mechanic_id;not null"`
	WorkPerformed string    `gorm:"column:work_performed;not null"`
	PartsReplaced string    `gorm:"column:parts_replaced"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Repair) TableName() string {
	return "repairs"
}

func (r *Repair) ToEntity() entities.Repair {
	return entities.Repair{
		ID:            r.ID,
		DefectID:      r.DefectID,
		MechanicID:    r.MechanicID,
		WorkPerformed: r.WorkPerformed,
		PartsReplaced: r.PartsReplaced,
		CreatedAt:     r.CreatedAt,
	}
}

type Inspection struct {
	ID         int64                    `gorm:"column:id;primaryKey;autoIncrement"`
	AircraftID int64                    `gorm:"column:aircraft_id;not null;index"`
	Date       time.Time                `gorm:"column:performed_at;not null"`
	Type       constants.InspectionType `gorm:"column:type"`
	Remarks    string                   `gorm:"column:remarks"`
	MechanicID int64                    `gorm:"column:mechanic_id"`
}

// TableName specifies the table name for GORM
func (Inspection) TableName() string {
	return "inspections"
}

func (i *Inspection) ToEntity() entities.Inspection {
	return entities.Inspection{
		ID:         i.ID,
		AircraftID: i.AircraftID,
		Date:       i.Date,
		Type:       i.Type,
		Remarks:    i.Remarks,
	}
}
