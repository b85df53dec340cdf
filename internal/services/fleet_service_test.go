package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/db/repositories"
	"aeroclub/logbook/internal/models/dtos"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

func newFleetService(db *gorm.DB) *FleetService {
	return NewFleetService(
		repositories.NewAircraftRepository(db),
		repositories.NewMaintenanceRepository(db),
		common.NewCacheService(60, 120),
		nil,
	)
}

func TestFleetService_CreateAircraft_Success(t *testing.T) {
	db := setupTestDB(t)
	svc := newFleetService(db)

	aircraft, err := svc.CreateAircraft(context.Background(), &dtos.AircraftReq{
		Type:         "ASK 21",
		Registration: "D-1234",
		HourlyRate:   "95.50",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if aircraft.HourlyRate.StringFixed(2) != "95.50" {
		t.Errorf("Expected rate 95.50, got %s", aircraft.HourlyRate)
	}
}

func TestFleetService_CreateAircraft_RejectsBadRate(t *testing.T) {
	db := setupTestDB(t)
	svc := newFleetService(db)

	for _, rate := range []string{"", "abc", "-10"} {
		_, err := svc.CreateAircraft(context.Background(), &dtos.AircraftReq{
			Type:         "ASK 21",
			Registration: "D-1234",
			HourlyRate:   rate,
		})
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Errorf("Expected RequestError for rate %q, got %v", rate, err)
		}
	}
}

func TestFleetService_RetireAircraft_KeepsHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := newFleetService(db)
	aircraft := seedAircraft(t, db, "100")

	if err := svc.RetireAircraft(context.Background(), aircraft.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var stored gormModels.Aircraft
	if err := db.First(&stored, aircraft.ID).Error; err != nil {
		t.Fatalf("Retired aircraft must stay in storage: %v", err)
	}
	if stored.DeletedAt == nil {
		t.Error("Expected deleted_at to be set")
	}
}

func TestFleetService_DefectLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := newFleetService(db)
	aircraft := seedAircraft(t, db, "100")

	defect, err := svc.ReportDefect(context.Background(), &dtos.DefectReq{
		AircraftID:  aircraft.ID,
		Description: "canopy latch sticking",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if defect.Status != constants.DefectOpen {
		t.Fatalf("Expected open, got %s", defect.Status)
	}

	// Forward transitions succeed
	if err := svc.TransitionDefect(context.Background(), defect.ID, "in_progress"); err != nil {
		t.Fatalf("open -> in_progress: %v", err)
	}
	if err := svc.TransitionDefect(context.Background(), defect.ID, "closed"); err != nil {
		t.Fatalf("in_progress -> closed: %v", err)
	}

	// Backward transition is refused
	err = svc.TransitionDefect(context.Background(), defect.ID, "open")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %v", err)
	}
	if reqErr.Code != "BAD_TRANSITION" {
		t.Errorf("Expected BAD_TRANSITION, got %s", reqErr.Code)
	}
}

func TestFleetService_TransitionDefect_UnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newFleetService(db)
	aircraft := seedAircraft(t, db, "100")

	defect, err := svc.ReportDefect(context.Background(), &dtos.DefectReq{
		AircraftID:  aircraft.ID,
		Description: "radio dead",
	})
	if err != nil {
		t.Fatalf("seed defect: %v", err)
	}

	if err := svc.TransitionDefect(context.Background(), defect.ID, "fixed"); err == nil {
		t.Error("Expected unknown status to be rejected")
	}
}

func TestFleetService_LogRepair_DoesNotCloseDefect(t *testing.T) {
	db := setupTestDB(t)
	svc := newFleetService(db)
	aircraft := seedAircraft(t, db, "100")

	defect, err := svc.ReportDefect(context.Background(), &dtos.DefectReq{
		AircraftID:  aircraft.ID,
		Description: "canopy latch sticking",
	})
	if err != nil {
		t.Fatalf("seed defect: %v", err)
	}

	repair, err := svc.LogRepair(context.Background(), defect.ID, &dtos.RepairReq{
		MechanicID:    7,
		WorkPerformed: "replaced latch spring",
		PartsReplaced: "latch spring",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if repair.DefectID != defect.ID {
		t.Errorf("Repair not linked to defect: %d", repair.DefectID)
	}

	// The defect stays open until it is closed explicitly
	var stored gormModels.Defect
	db.First(&stored, defect.ID)
	if stored.Status != constants.DefectOpen {
		t.Errorf("Expected defect still open, got %s", stored.Status)
	}
}

func TestFleetService_LogRepair_UnknownDefect(t *testing.T) {
	db := setupTestDB(t)
	svc := newFleetService(db)

	_, err := svc.LogRepair(context.Background(), 999, &dtos.RepairReq{
		MechanicID:    7,
		WorkPerformed: "nothing",
	})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %v", err)
	}
}

func TestFleetService_RecordInspection(t *testing.T) {
	db := setupTestDB(t)
	svc := newFleetService(db)
	aircraft := seedAircraft(t, db, "100")

	inspection, err := svc.RecordInspection(context.Background(), &dtos.InspectionReq{
		AircraftID: aircraft.ID,
		Date:       "2026-04-01",
		Type:       "annual",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if inspection.Date.Format("2006-01-02") != "2026-04-01" {
		t.Errorf("Unexpected inspection date %v", inspection.Date)
	}

	// Bad date is rejected
	if _, err := svc.RecordInspection(context.Background(), &dtos.InspectionReq{
		AircraftID: aircraft.ID,
		Date:       "01.04.2026",
		Type:       "annual",
	}); err == nil {
		t.Error("Expected bad date to be rejected")
	}
}
