package services

import (
	"fmt"
	"time"

	"aeroclub/logbook/internal/constants"
)

// RequestError marks a client-side input problem so the API layer can
// answer 400 instead of 500.
type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func badRequest(code, format string, args ...interface{}) *RequestError {
	return &RequestError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ParseCrewRole maps a request role string onto the closed crew role set.
func ParseCrewRole(s string) (constants.CrewRole, error) {
	role := constants.CrewRole(s)
	if !role.IsValid() {
		return "", badRequest(constants.ErrCodeUnknownRole, "unknown crew role %q", s)
	}
	return role, nil
}

// ParseLaunchMethod maps a request launch string; anything outside the two
// priced methods is recorded as OTHER, matching the fee schedule.
func ParseLaunchMethod(s string) constants.LaunchMethod {
	switch constants.LaunchMethod(s) {
	case constants.LaunchWinch:
		return constants.LaunchWinch
	case constants.LaunchTowPlane:
		return constants.LaunchTowPlane
	default:
		return constants.LaunchOther
	}
}

// ParseTimestamp parses RFC3339 request timestamps.
func ParseTimestamp(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, badRequest("BAD_TIMESTAMP", "invalid %s timestamp %q", field, s)
	}
	return t, nil
}
