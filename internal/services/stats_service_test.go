package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"aeroclub/logbook/internal/auth"
	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/db/repositories"
	"aeroclub/logbook/internal/models/dtos"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

func newStatsService(db *gorm.DB) *StatsService {
	return NewStatsService(
		repositories.NewPilotRepository(db),
		repositories.NewAircraftRepository(db),
		repositories.NewMaintenanceRepository(db),
		repositories.NewLedgerRepository(db),
		nil,
		common.NewCacheService(60, 120),
		decimal.Zero,
	)
}

// seedTimedFlight inserts a flight of the given length with one PIC.
func seedTimedFlight(t *testing.T, db *gorm.DB, aircraftID, pilotID int64, hours int) {
	t.Helper()
	start := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	flight := &gormModels.Flight{
		AircraftID:   aircraftID,
		Start:        start,
		Landing:      start.Add(time.Duration(hours) * time.Hour),
		LaunchMethod: constants.LaunchWinch,
	}
	if err := db.Create(flight).Error; err != nil {
		t.Fatalf("Failed to seed flight: %v", err)
	}
	crew := gormModels.CrewAssignment{FlightID: flight.ID, PilotID: pilotID, Role: constants.CrewRolePIC}
	if err := db.Create(&crew).Error; err != nil {
		t.Fatalf("Failed to seed crew: %v", err)
	}
}

func TestStatsService_PilotRanking_OrderAndThreshold(t *testing.T) {
	db := setupTestDB(t)
	svc := newStatsService(db)
	aircraft := seedAircraft(t, db, "100")
	high := seedPilot(t, db, "Anna", "Berg")
	low := seedPilot(t, db, "Bo", "Lund")

	seedTimedFlight(t, db, aircraft.ID, high.ID, 8)
	seedTimedFlight(t, db, aircraft.ID, low.ID, 2)

	admin := &auth.Principal{AccountID: 1, Role: constants.AccountRoleAdmin}
	ranking, err := svc.PilotRanking(context.Background(), admin)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Two hours is below the default five-hour threshold
	if len(ranking) != 1 {
		t.Fatalf("Expected 1 ranked pilot, got %d", len(ranking))
	}
	if ranking[0].PilotID != high.ID {
		t.Errorf("Expected pilot %d on top, got %d", high.ID, ranking[0].PilotID)
	}
	if ranking[0].Airtime != "8" {
		t.Errorf("Expected 8 hours, got %s", ranking[0].Airtime)
	}
}

func TestStatsService_PilotRanking_ExternalAirtimeCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := newStatsService(db)

	veteran := &gormModels.Pilot{
		FirstName:       "Else",
		LastName:        "Krag",
		ShowName:        true,
		ExternalAirtime: decimal.NewFromInt(120),
	}
	if err := db.Create(veteran).Error; err != nil {
		t.Fatalf("seed pilot: %v", err)
	}

	ranking, err := svc.PilotRanking(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ranking) != 1 {
		t.Fatalf("Expected 1 ranked pilot, got %d", len(ranking))
	}
	if ranking[0].Airtime != "120" {
		t.Errorf("Expected 120 hours of prior experience, got %s", ranking[0].Airtime)
	}
}

func TestStatsService_PilotRanking_MasksWithheldNames(t *testing.T) {
	db := setupTestDB(t)
	svc := newStatsService(db)
	aircraft := seedAircraft(t, db, "100")

	private := &gormModels.Pilot{FirstName: "Greta", LastName: "Falk", ShowName: false}
	if err := db.Create(private).Error; err != nil {
		t.Fatalf("seed pilot: %v", err)
	}
	seedTimedFlight(t, db, aircraft.ID, private.ID, 6)

	// Anonymous reader sees the mask
	ranking, err := svc.PilotRanking(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ranking[0].Name != "***" {
		t.Errorf("Expected masked name, got %q", ranking[0].Name)
	}

	// The pilot sees their own row
	self := &auth.Principal{AccountID: 1, Role: constants.AccountRolePilot, PilotID: &private.ID}
	ranking, err = svc.PilotRanking(context.Background(), self)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ranking[0].Name != "Greta Falk" {
		t.Errorf("Expected own name visible, got %q", ranking[0].Name)
	}

	// Admins see everything
	admin := &auth.Principal{AccountID: 2, Role: constants.AccountRoleAdmin}
	ranking, err = svc.PilotRanking(context.Background(), admin)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ranking[0].Name != "Greta Falk" {
		t.Errorf("Expected admin to see name, got %q", ranking[0].Name)
	}
}

func TestStatsService_FleetReport_CountsOpenDefects(t *testing.T) {
	db := setupTestDB(t)
	svc := newStatsService(db)
	aircraft := seedAircraft(t, db, "100")
	pilot := seedPilot(t, db, "Anna", "Berg")
	seedTimedFlight(t, db, aircraft.ID, pilot.ID, 3)

	open := &gormModels.Defect{AircraftID: aircraft.ID, Description: "latch", Status: constants.DefectOpen}
	closed := &gormModels.Defect{AircraftID: aircraft.ID, Description: "radio", Status: constants.DefectClosed}
	db.Create(open)
	db.Create(closed)

	report, err := svc.FleetReport(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("Expected 1 aircraft, got %d", len(report))
	}
	if report[0].OpenDefects != 1 {
		t.Errorf("Expected 1 open defect, got %d", report[0].OpenDefects)
	}
	if report[0].LifeHours != "3" {
		t.Errorf("Expected 3 life hours, got %s", report[0].LifeHours)
	}
}

func TestStatsService_PilotBalance_ReplaysLedger(t *testing.T) {
	db := setupTestDB(t)
	svc := newStatsService(db)
	setSvc := newSettlementService(db)
	aircraft := seedAircraft(t, db, "100")
	pilot := seedPilot(t, db, "Anna", "Berg")

	// Credit 150, then a 220 debit from settling a two-hour winch flight
	if _, err := setSvc.RecordPayment(context.Background(), &dtos.PaymentReq{PilotID: pilot.ID, Amount: "150"}); err != nil {
		t.Fatalf("payment: %v", err)
	}
	flight := seedFlight(t, db, aircraft.ID, map[int64]constants.CrewRole{pilot.ID: constants.CrewRolePIC})
	if _, err := setSvc.SettleFlight(context.Background(), flight.ID); err != nil {
		t.Fatalf("settle: %v", err)
	}

	balance, err := svc.PilotBalance(context.Background(), pilot.ID, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if balance.Balance != "-70.00" {
		t.Errorf("Expected balance -70.00, got %s", balance.Balance)
	}
	if len(balance.History) != 2 {
		t.Fatalf("Expected 2 history points, got %d", len(balance.History))
	}
	// The debit is stamped with the flight's landing time, which precedes
	// the payment recorded "now", so it replays first.
	if balance.History[0].Amount != "-220.00" || balance.History[0].Balance != "-220.00" {
		t.Errorf("Unexpected first point: %+v", balance.History[0])
	}
	if balance.History[1].Amount != "150.00" || balance.History[1].Balance != "-70.00" {
		t.Errorf("Unexpected second point: %+v", balance.History[1])
	}
}

func TestStatsService_LatestInspections_PicksMostRecent(t *testing.T) {
	db := setupTestDB(t)
	svc := newStatsService(db)
	aircraft := seedAircraft(t, db, "100")

	older := &gormModels.Inspection{
		AircraftID: aircraft.ID,
		Date:       time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		Type:       constants.InspectionAnnual,
	}
	newer := &gormModels.Inspection{
		AircraftID: aircraft.ID,
		Date:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Type:       constants.InspectionPeriodic,
	}
	db.Create(older)
	db.Create(newer)

	latest, err := svc.LatestInspections(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(latest) != 1 {
		t.Fatalf("Expected 1 aircraft, got %d", len(latest))
	}
	if latest[0].InspectionID != newer.ID {
		t.Errorf("Expected inspection %d, got %d", newer.ID, latest[0].InspectionID)
	}
	if latest[0].Date != "2026-04-01" {
		t.Errorf("Expected 2026-04-01, got %s", latest[0].Date)
	}
}

// jsonCache mimics the Redis backend: stored values survive only as their
// JSON representation.
type jsonCache struct {
	entries map[string][]byte
}

func newJSONCache() *jsonCache { return &jsonCache{entries: map[string][]byte{}} }

func (c *jsonCache) Set(key string, value interface{}, _ time.Duration) {
	if raw, err := json.Marshal(value); err == nil {
		c.entries[key] = raw
	}
}

func (c *jsonCache) Get(key string) (interface{}, bool) {
	raw, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	var val interface{}
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, false
	}
	return val, true
}

func (c *jsonCache) Delete(key string) { delete(c.entries, key) }

func (c *jsonCache) GetOrSet(key string, d time.Duration, loader func() (any, error)) (interface{}, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}
	val, err := loader()
	if err != nil {
		return nil, err
	}
	c.Set(key, val, d)
	return val, nil
}

func (c *jsonCache) Close() error { return nil }

func TestStatsService_PilotRanking_ServesJSONCacheHits(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(
		repositories.NewPilotRepository(db),
		repositories.NewAircraftRepository(db),
		repositories.NewMaintenanceRepository(db),
		repositories.NewLedgerRepository(db),
		nil,
		newJSONCache(),
		decimal.Zero,
	)
	aircraft := seedAircraft(t, db, "100")
	first := seedPilot(t, db, "Anna", "Berg")
	seedTimedFlight(t, db, aircraft.ID, first.ID, 8)

	ranking, err := svc.PilotRanking(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ranking) != 1 || ranking[0].PilotID != first.ID {
		t.Fatalf("Expected ranking with pilot %d, got %+v", first.ID, ranking)
	}

	// A pilot added after the first load must stay invisible while the
	// cached list is live.
	late := seedPilot(t, db, "Bo", "Lund")
	seedTimedFlight(t, db, aircraft.ID, late.ID, 8)

	ranking, err = svc.PilotRanking(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ranking) != 1 {
		t.Errorf("Expected cached pilot list to serve the hit, got %d entries", len(ranking))
	}
	if ranking[0].PilotID != first.ID {
		t.Errorf("Expected pilot %d from cache, got %d", first.ID, ranking[0].PilotID)
	}
}
