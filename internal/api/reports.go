package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"aeroclub/logbook/internal/auth"
	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/models/dtos"
	"aeroclub/logbook/internal/services"
)

const reportLinkTTL = 24 * time.Hour

// knownReports is the closed set of report names a presigned link can grant.
var knownReports = map[string]bool{
	"dashboard":     true,
	"pilot_ranking": true,
	"fleet":         true,
}

// PilotRankingHandler handles GET /api/v1/reports/pilots.
func PilotRankingHandler(statsSvc *services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		principal := auth.GetPrincipal(r.Context())
		resp, err := statsSvc.PilotRanking(r.Context(), principal)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pilot ranking fetched", resp)
	}
}

// FleetReportHandler handles GET /api/v1/reports/fleet.
func FleetReportHandler(statsSvc *services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		resp, err := statsSvc.FleetReport(r.Context())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Fleet report fetched", resp)
	}
}

// PilotBalanceHandler handles GET /api/v1/reports/pilots/{id}/balance.
// ?history=true includes the step-by-step ledger replay.
func PilotBalanceHandler(statsSvc *services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		// Pilots may only replay their own ledger.
		principal := auth.GetPrincipal(r.Context())
		if principal == nil || (!principal.IsPrivileged() && (principal.PilotID == nil || *principal.PilotID != id)) {
			common.RespondError(w, initTime, nil, "forbidden", http.StatusForbidden)
			return
		}

		withHistory := r.URL.Query().Get("history") == "true"
		resp, err := statsSvc.PilotBalance(r.Context(), id, withHistory)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Balance fetched", resp)
	}
}

// LatestInspectionsHandler handles GET /api/v1/reports/inspections.
func LatestInspectionsHandler(statsSvc *services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		resp, err := statsSvc.LatestInspections(r.Context())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Latest inspections fetched", resp)
	}
}

// DebtorsHandler handles GET /api/v1/reports/debtors.
func DebtorsHandler(statsSvc *services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		resp, err := statsSvc.Debtors(r.Context())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Debtors fetched", resp)
	}
}

// DashboardHandler handles GET /api/v1/reports/dashboard.
func DashboardHandler(statsSvc *services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		principal := auth.GetPrincipal(r.Context())
		resp, err := statsSvc.Dashboard(r.Context(), principal)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Dashboard fetched", resp)
	}
}

// SignReportLinkHandler handles POST /api/v1/reports/links?report=name. The
// caller gets a short-lived token that later resolves the named report
// without an interactive session.
func SignReportLinkHandler(signer *common.ReportLinkSigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		principal := auth.GetPrincipal(r.Context())
		if principal == nil {
			common.RespondError(w, initTime, nil, "forbidden", http.StatusForbidden)
			return
		}

		report := r.URL.Query().Get("report")
		if !knownReports[report] {
			common.RespondError(w, initTime, nil, "unknown report", http.StatusBadRequest)
			return
		}

		token, err := signer.Sign(principal.AccountID, report, reportLinkTTL)
		if err != nil {
			common.RespondError(w, initTime, err, "failed to sign link")
			return
		}

		common.RespondSuccess(w, initTime, "Report link signed", dtos.ReportLinkResp{
			Token:     token,
			Report:    report,
			ExpiresAt: time.Now().Add(reportLinkTTL).UTC().Format(time.RFC3339),
		}, http.StatusCreated)
	}
}

// SharedReportHandler handles GET /api/v1/shared/{token}: resolves a signed
// link to the report it grants, no session required.
func SharedReportHandler(signer *common.ReportLinkSigner, statsSvc *services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		link, err := signer.Validate(chi.URLParam(r, "token"))
		if err != nil {
			common.RespondError(w, initTime, err, "invalid or expired link", http.StatusUnauthorized)
			return
		}

		// Shared links always see the masked view; consent flags apply as
		// for an anonymous reader.
		switch link.Report {
		case "dashboard":
			resp, err := statsSvc.Dashboard(r.Context(), nil)
			if err != nil {
				respondServiceError(w, initTime, err)
				return
			}
			common.RespondSuccess(w, initTime, "Dashboard fetched", resp)
		case "pilot_ranking":
			resp, err := statsSvc.PilotRanking(r.Context(), nil)
			if err != nil {
				respondServiceError(w, initTime, err)
				return
			}
			common.RespondSuccess(w, initTime, "Pilot ranking fetched", resp)
		case "fleet":
			resp, err := statsSvc.FleetReport(r.Context())
			if err != nil {
				respondServiceError(w, initTime, err)
				return
			}
			common.RespondSuccess(w, initTime, "Fleet report fetched", resp)
		default:
			common.RespondError(w, initTime, nil, "unknown report", http.StatusBadRequest)
		}
	}
}
