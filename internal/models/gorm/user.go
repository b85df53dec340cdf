package gorm

import (
	"time"

	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/models/entities"
)

type UserAccount struct {
	ID           int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	Login        string                `gorm:"column:login;uniqueIndex;not null"`
	PasswordHash string                `gorm:"column:password_hash;not null"`
	Role         constants.AccountRole `gorm:"column:role;type:account_role;not null"`
	PilotID      *int64                `gorm:"column:pilot_id;uniqueIndex"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    *time.Time            `gorm:"column:deleted_at"`

	// Relationships
	Pilot *Pilot `gorm:"foreignKey:PilotID"`
}

// TableName specifies the table name for GORM
func (UserAccount) TableName() string {
	return "user_accounts"
}

func (u *UserAccount) ToEntity() entities.UserAccount {
	return entities.UserAccount{
		ID:           u.ID,
		Login:        u.Login,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		PilotID:      u.PilotID,
		DeletedAt:    u.DeletedAt,
	}
}
