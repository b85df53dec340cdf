package constants

import (
	"database/sql/driver"
	"fmt"
)

// LaunchMethod mirrors the Postgres ENUM 'launch_method'
type LaunchMethod string

const (
	LaunchWinch    LaunchMethod = "WINCH"
	LaunchTowPlane LaunchMethod = "TOW_PLANE"
	LaunchOther    LaunchMethod = "OTHER"
)

func (m LaunchMethod) String() string { return string(m) }

// Scan implements the sql.Scanner interface
func (m *LaunchMethod) Scan(src interface{}) error {
	if src == nil {
		*m = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*m = LaunchMethod(v)
	case []byte:
		*m = LaunchMethod(v)
	default:
		return fmt.Errorf("LaunchMethod: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (m LaunchMethod) Value() (driver.Value, error) { return string(m), nil }

// DefectStatus models the one-way defect lifecycle. Transitions only move
// forward (open -> in_progress -> closed); nothing regresses automatically.
type DefectStatus string

const (
	DefectOpen       DefectStatus = "open"
	DefectInProgress DefectStatus = "in_progress"
	DefectClosed     DefectStatus = "closed"
)

func (s DefectStatus) String() string { return string(s) }

// CanTransitionTo reports whether s may move to next.
func (s DefectStatus) CanTransitionTo(next DefectStatus) bool {
	order := map[DefectStatus]int{DefectOpen: 0, DefectInProgress: 1, DefectClosed: 2}
	from, okF := order[s]
	to, okT := order[next]
	return okF && okT && to >= from
}

// Scan implements the sql.Scanner interface
func (s *DefectStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = DefectStatus(v)
	case []byte:
		*s = DefectStatus(v)
	default:
		return fmt.Errorf("DefectStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s DefectStatus) Value() (driver.Value, error) { return string(s), nil }

// InspectionType classifies performed airworthiness inspections.
type InspectionType string

const (
	InspectionPeriodic  InspectionType = "periodic"
	InspectionAnnual    InspectionType = "annual"
	InspectionHourBased InspectionType = "hour_based"
)

func (t InspectionType) String() string { return string(t) }
