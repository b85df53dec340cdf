package constants

import (
	"database/sql/driver"
	"fmt"
)

// CrewRole mirrors the Postgres ENUM 'crew_role'
type CrewRole string

const (
	CrewRolePIC        CrewRole = "PIC"
	CrewRoleSIC        CrewRole = "SIC"
	CrewRoleStudent    CrewRole = "STUDENT"
	CrewRoleInstructor CrewRole = "INSTRUCTOR"
	CrewRolePassenger  CrewRole = "PASSENGER"
)

// Stringer ­– convenient for fmt / logs
func (r CrewRole) String() string { return string(r) }

// IsValid reports whether r belongs to the closed role set.
func (r CrewRole) IsValid() bool {
	switch r {
	case CrewRolePIC, CrewRoleSIC, CrewRoleStudent, CrewRoleInstructor, CrewRolePassenger:
		return true
	}
	return false
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *CrewRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = CrewRole(v)
	case []byte:
		*r = CrewRole(v)
	default:
		return fmt.Errorf("CrewRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r CrewRole) Value() (driver.Value, error) { return string(r), nil }

// AccountRole is the system-level permission level of a user account.
type AccountRole string

const (
	AccountRolePilot    AccountRole = "pilot"
	AccountRoleMechanic AccountRole = "mechanic"
	AccountRoleAdmin    AccountRole = "admin"
)

func (r AccountRole) String() string { return string(r) }

// Scan implements the sql.Scanner interface
func (r *AccountRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = AccountRole(v)
	case []byte:
		*r = AccountRole(v)
	default:
		return fmt.Errorf("AccountRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r AccountRole) Value() (driver.Value, error) { return string(r), nil }
