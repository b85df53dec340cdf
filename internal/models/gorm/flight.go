package gorm

import (
	"time"

	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/models/entities"
)

type Flight struct {
	ID                int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	AircraftID        int64                  `gorm:"column:aircraft_id;not null;index"`
	Start             time.Time              `gorm:"column:start_at;not null"`
	Landing           time.Time              `gorm:"column:landing_at;not null"`
	LaunchMethod      constants.LaunchMethod `gorm:"column:launch_method;type:launch_method"`
	DepartureAirfield int64                  `gorm:"column:departure_airfield_id"`
	ArrivalAirfield   int64                  `gorm:"column:arrival_airfield_id"`
	SupervisorID      *int64                 `gorm:"column:supervisor_id"`
	Remarks           string                 `gorm:"column:remarks"`
	Settled           bool                   `gorm:"column:settled;default:false"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time              `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt         *time.Time             `gorm:"column:deleted_at;index"`

	// Relationships
	Aircraft        Aircraft         `gorm:"foreignKey:AircraftID"`
	CrewAssignments []CrewAssignment `gorm:"foreignKey:FlightID"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

func (f *Flight) ToEntity() entities.Flight {
	return entities.Flight{
		ID:                f.ID,
		AircraftID:        f.AircraftID,
		Start:             f.Start,
		Landing:           f.Landing,
		LaunchMethod:      f.LaunchMethod,
		DepartureAirfield: f.DepartureAirfield,
		ArrivalAirfield:   f.ArrivalAirfield,
		SupervisorID:      f.SupervisorID,
		Remarks:           f.Remarks,
		Settled:           f.Settled,
		DeletedAt:         f.DeletedAt,
	}
}

// CrewAssignment is the associative entity between flights and pilots.
type CrewAssignment struct {
	FlightID int64              `gorm:"column:flight_id;primaryKey"`
	PilotID  int64              `gorm:"column:pilot_id;primaryKey"`
	Role     constants.CrewRole `gorm:"column:role;type:crew_role;not null"`

	// Relationships
	Flight Flight `gorm:"foreignKey:FlightID"`
	Pilot  Pilot  `gorm:"foreignKey:PilotID"`
}

// TableName specifies the table name for GORM
func (CrewAssignment) TableName() string {
	return "crew_assignments"
}

func (c *CrewAssignment) ToEntity() entities.CrewAssignment {
	return entities.CrewAssignment{
		FlightID: c.FlightID,
		PilotID:  c.PilotID,
		Role:     c.Role,
	}
}

// CrewToEntities maps a stored roster to engine value types.
func CrewToEntities(rows []CrewAssignment) []entities.CrewAssignment {
	roster := make([]entities.CrewAssignment, 0, len(rows))
	for i := range rows {
		roster = append(roster, rows[i].ToEntity())
	}
	return roster
}
