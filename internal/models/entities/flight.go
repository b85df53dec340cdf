package entities

import (
	"time"

	"aeroclub/logbook/internal/constants"
)

// Flight is a single logbook operation. Start and Landing are full
// timestamps; FlightDate is derived from Start. SupervisorID references an
// instructor overseeing a student's solo flight from the ground and lives on
// the flight itself, not on the crew roster.
type Flight struct {
	ID                 int64
	AircraftID         int64
	Start              time.Time
	Landing            time.Time
	LaunchMethod       constants.LaunchMethod
	DepartureAirfield  int64
	ArrivalAirfield    int64
	SupervisorID       *int64
	Remarks            string
	Settled            bool
	DeletedAt          *time.Time
}

func (f Flight) IsDeleted() bool { return f.DeletedAt != nil }

// FlightDate is the calendar day the operation started.
func (f Flight) FlightDate() time.Time {
	y, m, d := f.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, f.Start.Location())
}

// Duration is the airborne time. Callers must have validated chronology
// first; a negative duration means the record was never accepted.
func (f Flight) Duration() time.Duration {
	return f.Landing.Sub(f.Start)
}

// CrewAssignment links a pilot to a flight under a specific role. The pair
// (FlightID, PilotID) is the composite key.
type CrewAssignment struct {
	FlightID int64
	PilotID  int64
	Role     constants.CrewRole
}
