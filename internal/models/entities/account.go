package entities

import (
	"time"

	"aeroclub/logbook/internal/constants"
)

// UserAccount is a login identity. Accounts with the pilot role must link a
// pilot profile (one account per profile); deleting the profile nulls the
// link but keeps the account and its history.
type UserAccount struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         constants.AccountRole
	PilotID      *int64
	DeletedAt    *time.Time
}

func (a UserAccount) IsLocked() bool { return a.DeletedAt != nil }

// Airfield is a departure/arrival location referenced by flights.
type Airfield struct {
	ID        int64
	Name      string
	Code      string
	City      string
	DeletedAt *time.Time
}
