package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"aeroclub/logbook/internal/constants"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

func testFlightRow(aircraftID int64) *gormModels.Flight {
	return &gormModels.Flight{
		AircraftID:   aircraftID,
		Start:        time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
		Landing:      time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC),
		LaunchMethod: constants.LaunchWinch,
	}
}

func TestFlightRepository_CreateWithCrew_InsertsRosterAndDefect(t *testing.T) {
	db := openTestDB(t)
	repo := NewFlightRepository(db)

	flight := testFlightRow(1)
	crew := []gormModels.CrewAssignment{
		{PilotID: 1, Role: constants.CrewRolePIC},
		{PilotID: 2, Role: constants.CrewRoleSIC},
	}
	defect := &gormModels.Defect{Description: "canopy latch sticking", Status: constants.DefectOpen}

	require.NoError(t, repo.CreateWithCrew(context.Background(), flight, crew, defect))
	assert.NotZero(t, flight.ID)

	stored, err := repo.GetWithCrew(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Len(t, stored.CrewAssignments, 2)

	require.NotNil(t, defect.FlightID)
	assert.Equal(t, flight.ID, *defect.FlightID)
	assert.Equal(t, flight.AircraftID, defect.AircraftID)
}

func TestFlightRepository_UpdateWithCrew_ReplacesRoster(t *testing.T) {
	db := openTestDB(t)
	repo := NewFlightRepository(db)

	flight := testFlightRow(1)
	require.NoError(t, repo.CreateWithCrew(context.Background(), flight, []gormModels.CrewAssignment{
		{PilotID: 1, Role: constants.CrewRolePIC},
	}, nil))

	require.NoError(t, repo.UpdateWithCrew(context.Background(), flight, []gormModels.CrewAssignment{
		{PilotID: 2, Role: constants.CrewRolePIC},
		{PilotID: 3, Role: constants.CrewRolePassenger},
	}))

	stored, err := repo.GetWithCrew(context.Background(), flight.ID)
	require.NoError(t, err)
	require.Len(t, stored.CrewAssignments, 2)
	pilotIDs := []int64{stored.CrewAssignments[0].PilotID, stored.CrewAssignments[1].PilotID}
	assert.ElementsMatch(t, []int64{2, 3}, pilotIDs)
}

func TestFlightRepository_SoftDelete_IsIdempotentGuarded(t *testing.T) {
	db := openTestDB(t)
	repo := NewFlightRepository(db)

	flight := testFlightRow(1)
	require.NoError(t, repo.CreateWithCrew(context.Background(), flight, nil, nil))

	require.NoError(t, repo.SoftDelete(context.Background(), flight.ID))

	// Second delete finds no live row
	assert.Error(t, repo.SoftDelete(context.Background(), flight.ID))

	var stored gormModels.Flight
	require.NoError(t, db.First(&stored, flight.ID).Error)
	assert.NotNil(t, stored.DeletedAt)
}

func TestFlightRepository_ListUnsettled_SkipsSettledAndDeleted(t *testing.T) {
	db := openTestDB(t)
	repo := NewFlightRepository(db)

	open := testFlightRow(1)
	require.NoError(t, repo.CreateWithCrew(context.Background(), open, []gormModels.CrewAssignment{
		{PilotID: 1, Role: constants.CrewRolePIC},
	}, nil))

	settled := testFlightRow(1)
	settled.Settled = true
	require.NoError(t, repo.CreateWithCrew(context.Background(), settled, nil, nil))

	deleted := testFlightRow(1)
	require.NoError(t, repo.CreateWithCrew(context.Background(), deleted, nil, nil))
	require.NoError(t, repo.SoftDelete(context.Background(), deleted.ID))

	unsettled, err := repo.ListUnsettled(context.Background())
	require.NoError(t, err)
	require.Len(t, unsettled, 1)
	assert.Equal(t, open.ID, unsettled[0].ID)
	// Roster comes preloaded for the settlement pass
	assert.Len(t, unsettled[0].CrewAssignments, 1)
}

func TestFlightRepository_MissingFlightKeepsNotFoundSentinel(t *testing.T) {
	db := openTestDB(t)
	repo := NewFlightRepository(db)

	_, err := repo.GetWithCrew(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.SoftDelete(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
