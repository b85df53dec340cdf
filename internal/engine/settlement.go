package engine

import (
	"github.com/shopspring/decimal"

	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/models/entities"
)

var two = decimal.NewFromInt(2)

// Allocate distributes a flight's total cost across the roster:
//
//   - A student or passenger aboard pays the full cost (student takes
//     precedence when both are aboard; among equals the lowest pilot ID
//     pays). The instructor always owes zero.
//   - Two licensed pilots (PIC and SIC, no student or passenger) split the
//     cost 50/50. When the half is not representable in whole cents the SIC
//     share is rounded down and the PIC carries the remainder cent.
//   - A lone PIC pays the full cost.
//
// Every roster pilot appears in the result, non-payers with a zero amount,
// and the allocations always sum exactly to total. Returns *AllocationError
// when no roster member maps to a payer branch; with crew validation done
// first this is an internal consistency failure, not user error.
func Allocate(flightID int64, total decimal.Decimal, roster []entities.CrewAssignment) (map[int64]decimal.Decimal, error) {
	alloc := make(map[int64]decimal.Decimal, len(roster))
	for _, a := range roster {
		alloc[a.PilotID] = decimal.Zero
	}

	if payer, ok := soloPayer(roster); ok {
		alloc[payer] = total
		return alloc, nil
	}

	var pic, sic *int64
	for _, a := range roster {
		a := a
		switch a.Role {
		case constants.CrewRolePIC:
			pic = &a.PilotID
		case constants.CrewRoleSIC:
			sic = &a.PilotID
		}
	}

	switch {
	case pic != nil && sic != nil:
		// Remainder cent on odd totals goes to the PIC.
		sicShare := total.Div(two).RoundFloor(2)
		alloc[*sic] = sicShare
		alloc[*pic] = total.Sub(sicShare)
	case pic != nil:
		alloc[*pic] = total
	default:
		return nil, &AllocationError{FlightID: flightID}
	}

	return alloc, nil
}

// soloPayer picks the student (or, failing that, the passenger) who is
// billed the whole flight. Lowest pilot ID wins among several candidates of
// the same role so the outcome is deterministic.
func soloPayer(roster []entities.CrewAssignment) (int64, bool) {
	found := false
	var payer int64
	pick := func(role constants.CrewRole) {
		for _, a := range roster {
			if a.Role != role {
				continue
			}
			if !found || a.PilotID < payer {
				payer = a.PilotID
				found = true
			}
		}
	}
	pick(constants.CrewRoleStudent)
	if !found {
		pick(constants.CrewRolePassenger)
	}
	return payer, found
}
