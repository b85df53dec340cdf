package entities

import (
	"time"

	"aeroclub/logbook/internal/constants"
)

// Defect is a pilot-reported airworthiness issue on an airframe. FlightID is
// set when the defect was reported as part of a flight entry.
type Defect struct {
	ID          int64
	AircraftID  int64
	FlightID    *int64
	Description string
	Status      constants.DefectStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Repair documents work performed against an existing defect. Creating a
// repair does not close the defect; the status transition is a separate,
// explicit action.
type Repair struct {
	ID            int64
	DefectID      int64
	MechanicID    int64
	WorkPerformed string
	PartsReplaced string
	CreatedAt     time.Time
}

// Inspection is one performed airworthiness check. The latest inspection
// per aircraft is always derived, never stored as a pointer.
type Inspection struct {
	ID         int64
	AircraftID int64
	Date       time.Time
	Type       constants.InspectionType
	Remarks    string
}
