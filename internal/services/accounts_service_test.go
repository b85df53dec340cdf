package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/db/repositories"
	"aeroclub/logbook/internal/models/dtos"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

func newAccountsService(db *gorm.DB) *AccountsService {
	return NewAccountsService(
		repositories.NewUserRepository(db),
		repositories.NewPilotRepository(db),
		common.NewCacheService(60, 120),
	)
}

func TestAccountsService_CreateAccount_HashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)
	pilot := seedPilot(t, db, "Anna", "Berg")

	account, err := svc.CreateAccount(context.Background(), &dtos.AccountReq{
		Login:    "anna",
		Password: "correct horse",
		Role:     "pilot",
		PilotID:  &pilot.ID,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if account.PasswordHash == "correct horse" {
		t.Error("Password must never be stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("correct horse")); err != nil {
		t.Errorf("Stored hash does not verify: %v", err)
	}
}

func TestAccountsService_CreateAccount_PilotRoleRequiresPilot(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	_, err := svc.CreateAccount(context.Background(), &dtos.AccountReq{
		Login:    "anna",
		Password: "correct horse",
		Role:     "pilot",
	})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %v", err)
	}
	if reqErr.Code != "MISSING_PILOT" {
		t.Errorf("Expected MISSING_PILOT, got %s", reqErr.Code)
	}
}

func TestAccountsService_CreateAccount_OneAccountPerPilot(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)
	pilot := seedPilot(t, db, "Anna", "Berg")

	if _, err := svc.CreateAccount(context.Background(), &dtos.AccountReq{
		Login:    "anna",
		Password: "correct horse",
		Role:     "pilot",
		PilotID:  &pilot.ID,
	}); err != nil {
		t.Fatalf("first account: %v", err)
	}

	_, err := svc.CreateAccount(context.Background(), &dtos.AccountReq{
		Login:    "anna2",
		Password: "correct horse",
		Role:     "pilot",
		PilotID:  &pilot.ID,
	})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %v", err)
	}
	if reqErr.Code != "PILOT_TAKEN" {
		t.Errorf("Expected PILOT_TAKEN, got %s", reqErr.Code)
	}
}

func TestAccountsService_CreateAccount_MechanicNeedsNoPilot(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	account, err := svc.CreateAccount(context.Background(), &dtos.AccountReq{
		Login:    "wrench",
		Password: "torque wrench",
		Role:     "mechanic",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if account.PilotID != nil {
		t.Error("Mechanic account must not link a pilot")
	}
}

func TestAccountsService_CreateAccount_RejectsWeakPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	_, err := svc.CreateAccount(context.Background(), &dtos.AccountReq{
		Login:    "anna",
		Password: "short",
		Role:     "admin",
	})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %v", err)
	}
	if reqErr.Code != "WEAK_PASSWORD" {
		t.Errorf("Expected WEAK_PASSWORD, got %s", reqErr.Code)
	}
}

func TestAccountsService_LockAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	account, err := svc.CreateAccount(context.Background(), &dtos.AccountReq{
		Login:    "boss",
		Password: "clearance five",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	if err := svc.LockAccount(context.Background(), account.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var stored gormModels.UserAccount
	if err := db.First(&stored, account.ID).Error; err != nil {
		t.Fatalf("Locked account must stay in storage: %v", err)
	}
	if stored.DeletedAt == nil {
		t.Error("Expected deleted_at to be set")
	}

	// The resolved entity reports the lock so the auth layer can refuse it
	userRepo := repositories.NewUserRepository(db)
	resolved, err := userRepo.GetByLogin(context.Background(), "boss")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !resolved.IsLocked() {
		t.Error("Expected resolved account to report locked")
	}
}

func TestAccountsService_RetirePilot_UnlinksAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)
	pilot := seedPilot(t, db, "Anna", "Berg")

	account, err := svc.CreateAccount(context.Background(), &dtos.AccountReq{
		Login:    "anna",
		Password: "correct horse",
		Role:     "pilot",
		PilotID:  &pilot.ID,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	if err := svc.RetirePilot(context.Background(), pilot.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var storedPilot gormModels.Pilot
	db.First(&storedPilot, pilot.ID)
	if storedPilot.DeletedAt == nil {
		t.Error("Expected pilot deleted_at to be set")
	}

	var storedAccount gormModels.UserAccount
	db.First(&storedAccount, account.ID)
	if storedAccount.PilotID != nil {
		t.Error("Expected account pilot link to be nulled")
	}
	if storedAccount.DeletedAt != nil {
		t.Error("Account itself must survive the pilot retirement")
	}
}

func TestAccountsService_CreatePilot_ValidatesExternalAirtime(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountsService(db)

	pilot, err := svc.CreatePilot(context.Background(), &dtos.PilotReq{
		FirstName:       "Carl",
		LastName:        "Nyberg",
		ExternalAirtime: "12.5",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if pilot.ExternalAirtime.String() != "12.5" {
		t.Errorf("Expected 12.5, got %s", pilot.ExternalAirtime)
	}

	if _, err := svc.CreatePilot(context.Background(), &dtos.PilotReq{
		FirstName:       "Carl",
		LastName:        "Nyberg",
		ExternalAirtime: "-1",
	}); err == nil {
		t.Error("Expected negative external airtime to be rejected")
	}
}
