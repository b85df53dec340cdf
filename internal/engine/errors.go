package engine

import (
	"fmt"
	"time"

	"aeroclub/logbook/internal/constants"
)

// TimeOrderError rejects a flight whose landing is not strictly after its
// start. The mutation is never auto-corrected.
type TimeOrderError struct {
	Start   time.Time
	Landing time.Time
}

func (e *TimeOrderError) Error() string {
	return fmt.Sprintf("landing %s is not after start %s",
		e.Landing.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// Code returns the stable rule code for API error mapping.
func (e *TimeOrderError) Code() string { return constants.ErrCodeTimeOrder }

// SafetyRule identifies the specific crew invariant that was violated.
type SafetyRule string

const (
	RuleUnsupervisedStudent SafetyRule = SafetyRule(constants.ErrCodeUnsupervisedStudent)
	RuleSicWithoutPic       SafetyRule = SafetyRule(constants.ErrCodeSicWithoutPic)
	RuleMultiplePic         SafetyRule = SafetyRule(constants.ErrCodeMultiplePic)
)

// SafetyError rejects a crew roster mutation. It carries the flight ID and
// the violated rule so the caller can surface the exact violation instead of
// a generic "invalid roster" message.
type SafetyError struct {
	FlightID int64
	Rule     SafetyRule
}

func (e *SafetyError) Error() string {
	return fmt.Sprintf("flight %d: %s", e.FlightID, constants.GetErrorMessage(string(e.Rule)))
}

// Code returns the stable rule code for API error mapping.
func (e *SafetyError) Code() string { return string(e.Rule) }

// AllocationError signals that no roster member maps to a payer branch.
// Unreachable when crew validation ran first, so it is treated as an
// internal consistency failure, not a user input error.
type AllocationError struct {
	FlightID int64
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("flight %d: no payer in roster", e.FlightID)
}

// Code returns the stable rule code for API error mapping.
func (e *AllocationError) Code() string { return constants.ErrCodeNoPayer }
