package routes

import (
	"github.com/go-chi/chi/v5"

	"aeroclub/logbook/internal/api"
	"aeroclub/logbook/internal/middleware"
)

// RegisterAPIRoutes registers the versioned API surface. Shared report
// links stay outside the authenticated group; everything else requires a
// resolved principal, with mutation routes gated by role.
func RegisterAPIRoutes(r chi.Router, deps *Dependencies) {
	// Presigned report links carry their own authorization.
	r.Get("/api/v1/shared/{token}", api.SharedReportHandler(deps.LinkSigner, deps.Stats))

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.PrincipalMiddleware(deps.UserRepo))

		// Any authenticated member
		v1.Get("/flights", api.ListFlightsHandler(deps.Flights))
		v1.Get("/flights/{id}", api.GetFlightHandler(deps.Flights))
		v1.Post("/flights", api.CreateFlightHandler(deps.Flights))
		v1.Put("/flights/{id}", api.UpdateFlightHandler(deps.Flights))

		v1.Post("/defects", api.ReportDefectHandler(deps.Fleet))
		v1.Get("/defects", api.OpenDefectsHandler(deps.Fleet))

		v1.Get("/reports/pilots", api.PilotRankingHandler(deps.Stats))
		v1.Get("/reports/fleet", api.FleetReportHandler(deps.Stats))
		v1.Get("/reports/inspections", api.LatestInspectionsHandler(deps.Stats))
		v1.Get("/reports/dashboard", api.DashboardHandler(deps.Stats))
		v1.Get("/reports/pilots/{id}/balance", api.PilotBalanceHandler(deps.Stats))
		v1.Post("/reports/links", api.SignReportLinkHandler(deps.LinkSigner))

		// Mechanic group (admins retain technical access)
		v1.Group(func(mech chi.Router) {
			mech.Use(middleware.IsMechanicMiddleware())

			mech.Patch("/defects/{id}/status", api.DefectStatusHandler(deps.Fleet))
			mech.Post("/defects/{id}/repairs", api.LogRepairHandler(deps.Fleet))
			mech.Post("/inspections", api.RecordInspectionHandler(deps.Fleet))
		})

		// Admin group
		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.IsAdminMiddleware())

			admin.Delete("/flights/{id}", api.DeleteFlightHandler(deps.Flights))
			admin.Post("/flights/{id}/settle", api.SettleFlightHandler(deps.Settlement))
			admin.Post("/settlements/run", api.SettleAllHandler(deps.Settlement))
			admin.Post("/payments", api.RecordPaymentHandler(deps.Settlement))
			admin.Get("/reports/debtors", api.DebtorsHandler(deps.Stats))

			admin.Post("/fleet", api.CreateAircraftHandler(deps.Fleet))
			admin.Put("/fleet/{id}", api.UpdateAircraftHandler(deps.Fleet))
			admin.Delete("/fleet/{id}", api.RetireAircraftHandler(deps.Fleet))

			admin.Post("/pilots", api.CreatePilotHandler(deps.Accounts))
			admin.Put("/pilots/{id}", api.UpdatePilotHandler(deps.Accounts))
			admin.Delete("/pilots/{id}", api.RetirePilotHandler(deps.Accounts))

			admin.Post("/accounts", api.CreateAccountHandler(deps.Accounts))
			admin.Post("/accounts/{id}/lock", api.LockAccountHandler(deps.Accounts))
		})
	})
}
