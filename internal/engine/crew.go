package engine

import (
	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/models/entities"
)

// rosterProfile is the role census of a flight's intended crew.
type rosterProfile struct {
	pics        int
	sics        int
	students    int
	instructors int
	passengers  int
}

func profileRoster(roster []entities.CrewAssignment) rosterProfile {
	var p rosterProfile
	for _, a := range roster {
		switch a.Role {
		case constants.CrewRolePIC:
			p.pics++
		case constants.CrewRoleSIC:
			p.sics++
		case constants.CrewRoleStudent:
			p.students++
		case constants.CrewRoleInstructor:
			p.instructors++
		case constants.CrewRolePassenger:
			p.passengers++
		}
	}
	return p
}

// ValidateCrew checks the crew-safety invariants against the FULL intended
// roster of a flight, not the single edited assignment. Callers must pass
// the final roster state so that atomically adding PIC and SIC together is
// accepted. The caller serializes concurrent edits to the same flight's
// roster; the engine assumes it sees a consistent snapshot.
//
// Rules:
//  1. A student aboard requires an instructor in the roster or a
//     supervising instructor recorded on the flight.
//  2. An SIC requires a PIC on the same flight.
//  3. At most one PIC per flight.
//
// A rejected roster leaves prior state untouched; the returned *SafetyError
// names the violated rule and the flight.
func ValidateCrew(flight entities.Flight, roster []entities.CrewAssignment) error {
	p := profileRoster(roster)

	if p.pics > 1 {
		return &SafetyError{FlightID: flight.ID, Rule: RuleMultiplePic}
	}

	if p.sics > 0 && p.pics == 0 {
		return &SafetyError{FlightID: flight.ID, Rule: RuleSicWithoutPic}
	}

	if p.students > 0 && p.instructors == 0 && flight.SupervisorID == nil {
		return &SafetyError{FlightID: flight.ID, Rule: RuleUnsupervisedStudent}
	}

	return nil
}
