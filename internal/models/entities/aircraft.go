package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aircraft is a fleet airframe. Never hard-deleted; DeletedAt marks it
// withdrawn while historical flights keep referencing it.
type Aircraft struct {
	ID           int64
	Type         string
	Registration string
	HourlyRate   decimal.Decimal
	DeletedAt    *time.Time
}

// IsDeleted reports whether the airframe has been withdrawn from the fleet.
func (a Aircraft) IsDeleted() bool { return a.DeletedAt != nil }
