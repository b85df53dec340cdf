package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/models/entities"
)

// DefaultMinimumAirtime is the ranking inclusion threshold in hours.
var DefaultMinimumAirtime = decimal.NewFromInt(5)

// PilotAirtime sums airborne hours over a pilot's non-deleted flights and
// adds the externally transferred airtime carried over from other logbooks.
// A pilot with no flights aggregates to exactly the external airtime.
func PilotAirtime(pilot entities.Pilot, flights []entities.Flight) decimal.Decimal {
	total := pilot.ExternalAirtime
	for _, f := range flights {
		if f.IsDeleted() {
			continue
		}
		total = total.Add(DurationHours(f.Duration()))
	}
	return total
}

// AircraftAirtime sums life hours over the non-deleted flights of one
// airframe.
func AircraftAirtime(flights []entities.Flight) decimal.Decimal {
	total := decimal.Zero
	for _, f := range flights {
		if f.IsDeleted() {
			continue
		}
		total = total.Add(DurationHours(f.Duration()))
	}
	return total
}

// BalancePoint is one step of a pilot's running balance.
type BalancePoint struct {
	Entry   entities.LedgerEntry
	Balance decimal.Decimal
}

// RunningBalance computes the cumulative balance over a pilot's ledger
// entries ordered by operation timestamp. Ties are broken deterministically:
// payments sort before cost debits on the same timestamp, then insertion
// order (Seq). The input is not mutated.
func RunningBalance(entries []entities.LedgerEntry) []BalancePoint {
	ordered := make([]entities.LedgerEntry, len(entries))
	copy(ordered, entries)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.At.Equal(b.At) {
			return a.At.Before(b.At)
		}
		if a.Kind != b.Kind {
			return a.Kind == constants.LedgerPayment
		}
		return a.Seq < b.Seq
	})

	points := make([]BalancePoint, 0, len(ordered))
	balance := decimal.Zero
	for _, e := range ordered {
		balance = balance.Add(e.Signed())
		points = append(points, BalancePoint{Entry: e, Balance: balance})
	}
	return points
}

// LatestInspections selects the single most recent inspection per aircraft.
// Later dates win; date ties go to the highest ID (most recently created).
func LatestInspections(inspections []entities.Inspection) map[int64]entities.Inspection {
	latest := make(map[int64]entities.Inspection)
	for _, insp := range inspections {
		cur, ok := latest[insp.AircraftID]
		if !ok || insp.Date.After(cur.Date) || (insp.Date.Equal(cur.Date) && insp.ID > cur.ID) {
			latest[insp.AircraftID] = insp
		}
	}
	return latest
}

// AirtimeTotal couples a pilot with their aggregate hours for rankings.
type AirtimeTotal struct {
	Pilot   entities.Pilot
	Airtime decimal.Decimal
}

// FilterByMinimumAirtime keeps only pilots whose aggregate airtime meets or
// exceeds the threshold.
func FilterByMinimumAirtime(totals []AirtimeTotal, threshold decimal.Decimal) []AirtimeTotal {
	kept := make([]AirtimeTotal, 0, len(totals))
	for _, t := range totals {
		if t.Airtime.GreaterThanOrEqual(threshold) {
			kept = append(kept, t)
		}
	}
	return kept
}
