package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/models/entities"
)

// Fixed fee schedule, currency-unit-agnostic.
var (
	feeWinch     = decimal.NewFromInt(20)
	feeTowPlane  = decimal.NewFromInt(100)
	feePassenger = decimal.NewFromInt(100)

	secondsPerHour = decimal.NewFromInt(3600)
)

// LaunchFee returns the fixed fee for a launch method. Unknown methods cost
// nothing, matching the gravity/other branch.
func LaunchFee(method constants.LaunchMethod) decimal.Decimal {
	switch method {
	case constants.LaunchWinch:
		return feeWinch
	case constants.LaunchTowPlane:
		return feeTowPlane
	default:
		return decimal.Zero
	}
}

// PassengerFee returns the flat passenger surcharge when the roster carries
// a passenger.
func PassengerFee(roster []entities.CrewAssignment) decimal.Decimal {
	for _, a := range roster {
		if a.Role == constants.CrewRolePassenger {
			return feePassenger
		}
	}
	return decimal.Zero
}

// DurationHours converts airborne time to fractional hours as an exact
// decimal (second resolution).
func DurationHours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d / time.Second)).Div(secondsPerHour)
}

// ComputeCost derives the total cost of a flight:
//
//	duration_hours * hourly_rate + launch_fee + passenger_fee
//
// Pure and deterministic; uses exact decimal arithmetic so repeated
// invocations and currency totals never drift. Chronology must have been
// validated first, so the duration is never negative. The result is rounded
// to two decimal places.
func ComputeCost(flight entities.Flight, aircraft entities.Aircraft, roster []entities.CrewAssignment) decimal.Decimal {
	hours := DurationHours(flight.Duration())
	total := hours.Mul(aircraft.HourlyRate).
		Add(LaunchFee(flight.LaunchMethod)).
		Add(PassengerFee(roster))
	return total.Round(2)
}
