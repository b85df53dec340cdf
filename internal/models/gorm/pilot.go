package gorm

import (
	"time"

	"github.com/shopspring/decimal"

	"aeroclub/logbook/internal/models/entities"
)

type Pilot struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName       string          `gorm:"column:first_name;not null"`
	LastName        string          `gorm:"column:last_name;not null"`
	License         string          `gorm:"column:license"`
	ShowName        bool            `gorm:"column:show_name;default:false"`
	ShowLicense     bool            `gorm:"column:show_license;default:false"`
	ExternalAirtime decimal.Decimal `gorm:"column:external_airtime;type:numeric(10,2);default:0"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt       *time.Time      `gorm:"column:deleted_at;index"`

	// Relationships
	CrewAssignments []CrewAssignment `gorm:"foreignKey:PilotID"`
	Payments        []Payment        `gorm:"foreignKey:PilotID"`
}

// TableName specifies the table name for GORM
func (Pilot) TableName() string {
	return "pilots"
}

func (p *Pilot) ToEntity() entities.Pilot {
	return entities.Pilot{
		ID:              p.ID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		License:         p.License,
		ShowName:        p.ShowName,
		ShowLicense:     p.ShowLicense,
		ExternalAirtime: p.ExternalAirtime,
		DeletedAt:       p.DeletedAt,
	}
}
