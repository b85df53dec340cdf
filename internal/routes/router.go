package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"aeroclub/logbook/internal/api"
	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/config"
	"aeroclub/logbook/internal/db"
	"aeroclub/logbook/internal/db/repositories"
	"aeroclub/logbook/internal/jobs"
	"aeroclub/logbook/internal/logging"
	"aeroclub/logbook/internal/metrics"
	"aeroclub/logbook/internal/middleware"
	"aeroclub/logbook/internal/services"
)

// Dependencies bundles everything the router and background jobs share.
type Dependencies struct {
	MetricsReg *metrics.MetricsRegistry

	Flights    *services.FlightsService
	Settlement *services.SettlementService
	Fleet      *services.FleetService
	Stats      *services.StatsService
	Accounts   *services.AccountsService

	UserRepo   *repositories.UserRepository
	LinkSigner *common.ReportLinkSigner
	SweepJob   *jobs.SettlementSweepJob
}

// InitDependencies builds the repository and service graph on top of the
// open database handles.
func InitDependencies(cfg *config.Config, cache common.CacheInterface) *Dependencies {
	metricsReg := metrics.NewMetricsRegistry()

	aircraftRepo := repositories.NewAircraftRepository(db.PgDB)
	pilotRepo := repositories.NewPilotRepository(db.PgDB)
	flightRepo := repositories.NewFlightRepository(db.PgDB)
	maintRepo := repositories.NewMaintenanceRepository(db.PgDB)
	ledgerRepo := repositories.NewLedgerRepository(db.PgDB)
	userRepo := repositories.NewUserRepository(db.PgDB)
	reportsRepo := repositories.NewReportsRepository(db.DB)

	settlementSvc := services.NewSettlementService(flightRepo, aircraftRepo, pilotRepo, ledgerRepo, metricsReg)

	return &Dependencies{
		MetricsReg: metricsReg,
		Flights:    services.NewFlightsService(flightRepo, aircraftRepo, metricsReg),
		Settlement: settlementSvc,
		Fleet:      services.NewFleetService(aircraftRepo, maintRepo, cache, metricsReg),
		Stats:      services.NewStatsService(pilotRepo, aircraftRepo, maintRepo, ledgerRepo, reportsRepo, cache, cfg.MinimumAirtime),
		Accounts:   services.NewAccountsService(userRepo, pilotRepo, cache),
		UserRepo:   userRepo,
		LinkSigner: common.NewReportLinkSigner([]byte(cfg.ReportLinkSecret)),
		SweepJob:   jobs.NewSettlementSweepJob(settlementSvc, metricsReg, cfg.SettlementInterval),
	}
}

// RegisterRoutes assembles the router: global middleware, health check and
// the versioned API surface.
func RegisterRoutes(deps *Dependencies, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.MetricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Auth-Login"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	RegisterAPIRoutes(r, deps)

	return r
}
