package gorm

import (
	"time"

	"github.com/shopspring/decimal"

	"aeroclub/logbook/internal/models/entities"
)

type Aircraft struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Type         string          `gorm:"column:type;not null"`
	Registration string          `gorm:"column:registration;uniqueIndex;not null"`
	HourlyRate   decimal.Decimal `gorm:"column:hourly_rate;type:numeric(10,2)"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    *time.Time      `gorm:"column:deleted_at;index"`

	// Relationships
	Flights []Flight `gorm:"foreignKey:AircraftID"`
	Defects []Defect `gorm:"foreignKey:AircraftID"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircraft"
}

// ToEntity converts the persistence model into the engine's value type.
func (a *Aircraft) ToEntity() entities.Aircraft {
	return entities.Aircraft{
		ID:           a.ID,
		Type:         a.Type,
		Registration: a.Registration,
		HourlyRate:   a.HourlyRate,
		DeletedAt:    a.DeletedAt,
	}
}

type Airfield struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string     `gorm:"column:name;not null"`
	Code      string     `gorm:"column:code"`
	City      string     `gorm:"column:city"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

// TableName specifies the table name for GORM
func (Airfield) TableName() string {
	return "airfields"
}

func (a *Airfield) ToEntity() entities.Airfield {
	return entities.Airfield{
		ID:        a.ID,
		Name:      a.Name,
		Code:      a.Code,
		City:      a.City,
		DeletedAt: a.DeletedAt,
	}
}
