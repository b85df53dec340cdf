package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pilot is a natural person: a licensed pilot, a student or an instructor.
// ExternalAirtime carries hours flown outside this logbook so aggregate
// totals match the pilot's paper records.
type Pilot struct {
	ID              int64
	FirstName       string
	LastName        string
	License         string
	ShowName        bool
	ShowLicense     bool
	ExternalAirtime decimal.Decimal
	DeletedAt       *time.Time
}

func (p Pilot) IsDeleted() bool { return p.DeletedAt != nil }

// FullName joins the given and family name for display and reports.
func (p Pilot) FullName() string {
	return p.FirstName + " " + p.LastName
}
