package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"aeroclub/logbook/internal/db/repositories"
	gormModels "aeroclub/logbook/internal/models/gorm"
	"aeroclub/logbook/internal/services"
)

func newFlightsRouter(t *testing.T) chi.Router {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&gormModels.Aircraft{},
		&gormModels.Flight{},
		&gormModels.CrewAssignment{},
		&gormModels.Defect{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	svc := services.NewFlightsService(
		repositories.NewFlightRepository(db),
		repositories.NewAircraftRepository(db),
		nil,
	)

	r := chi.NewRouter()
	r.Get("/flights/{id}", GetFlightHandler(svc))
	r.Delete("/flights/{id}", DeleteFlightHandler(svc))
	return r
}

func TestGetFlightHandler_MissingFlightReturns404(t *testing.T) {
	router := newFlightsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/flights/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status %d for missing flight, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestDeleteFlightHandler_MissingFlightReturns404(t *testing.T) {
	router := newFlightsRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/flights/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status %d for missing flight, got %d", http.StatusNotFound, rec.Code)
	}
}
