package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"aeroclub/logbook/internal/constants"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&gormModels.Aircraft{},
		&gormModels.Pilot{},
		&gormModels.Flight{},
		&gormModels.CrewAssignment{},
		&gormModels.Defect{},
		&gormModels.Repair{},
		&gormModels.Inspection{},
		&gormModels.Payment{},
		&gormModels.LedgerEntry{},
		&gormModels.UserAccount{},
	)
	require.NoError(t, err)
	return db
}

func TestLedgerRepository_RecordPayment_WritesBothRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)

	payment := &gormModels.Payment{
		PilotID: 1,
		Amount:  decimal.NewFromInt(150),
		Label:   "bank transfer",
		PaidAt:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.RecordPayment(context.Background(), payment))
	assert.NotZero(t, payment.ID)

	var entries []gormModels.LedgerEntry
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, constants.LedgerPayment, entries[0].Kind)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(150)))
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, payment.PaidAt.UTC(), entries[0].At.UTC())
}

func TestLedgerRepository_AppendDebits_FlipsSettledFlag(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)

	flight := &gormModels.Flight{
		AircraftID: 1,
		Start:      time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
		Landing:    time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(flight).Error)

	debits := []gormModels.LedgerEntry{
		{PilotID: 1, Amount: decimal.NewFromInt(110), At: flight.Landing},
		{PilotID: 2, Amount: decimal.NewFromInt(110), At: flight.Landing},
	}
	require.NoError(t, repo.AppendDebits(context.Background(), flight.ID, debits))

	var stored gormModels.Flight
	require.NoError(t, db.First(&stored, flight.ID).Error)
	assert.True(t, stored.Settled)

	var entries []gormModels.LedgerEntry
	require.NoError(t, db.Where("flight_id = ?", flight.ID).Find(&entries).Error)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, constants.LedgerDebit, e.Kind)
		assert.NotEmpty(t, e.ID)
	}
}

func TestLedgerRepository_AppendDebits_RefusesSettledFlight(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)

	flight := &gormModels.Flight{
		AircraftID: 1,
		Start:      time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
		Landing:    time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC),
		Settled:    true,
	}
	require.NoError(t, db.Create(flight).Error)

	debits := []gormModels.LedgerEntry{
		{PilotID: 1, Amount: decimal.NewFromInt(220), At: flight.Landing},
	}
	err := repo.AppendDebits(context.Background(), flight.ID, debits)
	assert.Error(t, err)

	// The rollback removed the debit rows again
	var count int64
	db.Model(&gormModels.LedgerEntry{}).Count(&count)
	assert.Zero(t, count)
}

func TestLedgerRepository_ListEntriesByPilot_InsertionOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewLedgerRepository(db)

	at := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	for _, label := range []string{"first", "second", "third"} {
		payment := &gormModels.Payment{PilotID: 7, Amount: decimal.NewFromInt(10), Label: label, PaidAt: at}
		require.NoError(t, repo.RecordPayment(context.Background(), payment))
	}
	// Another pilot's entry must not leak in
	other := &gormModels.Payment{PilotID: 8, Amount: decimal.NewFromInt(10), Label: "other", PaidAt: at}
	require.NoError(t, repo.RecordPayment(context.Background(), other))

	entries, err := repo.ListEntriesByPilot(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Label)
	assert.Equal(t, "second", entries[1].Label)
	assert.Equal(t, "third", entries[2].Label)
	assert.Less(t, entries[0].Seq, entries[1].Seq)
	assert.Less(t, entries[1].Seq, entries[2].Seq)
}
