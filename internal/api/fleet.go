package api

import (
	"net/http"
	"time"

	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/models/dtos"
	gormModels "aeroclub/logbook/internal/models/gorm"
	"aeroclub/logbook/internal/services"
)

func toAircraftResp(a *gormModels.Aircraft) dtos.AircraftResp {
	return dtos.AircraftResp{
		ID:           a.ID,
		Type:         a.Type,
		Registration: a.Registration,
		HourlyRate:   a.HourlyRate.StringFixed(2),
	}
}

func toDefectResp(d *gormModels.Defect) dtos.DefectResp {
	return dtos.DefectResp{
		ID:          d.ID,
		AircraftID:  d.AircraftID,
		FlightID:    d.FlightID,
		Description: d.Description,
		Status:      string(d.Status),
		ReportedAt:  d.CreatedAt.Format(time.RFC3339),
	}
}

// CreateAircraftHandler handles POST /api/v1/fleet.
func CreateAircraftHandler(fleetSvc *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AircraftReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		aircraft, err := fleetSvc.CreateAircraft(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Aircraft registered", toAircraftResp(aircraft), http.StatusCreated)
	}
}

// UpdateAircraftHandler handles PUT /api/v1/fleet/{id}.
func UpdateAircraftHandler(fleetSvc *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		var req dtos.AircraftReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		aircraft, err := fleetSvc.UpdateAircraft(r.Context(), id, &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Aircraft updated", toAircraftResp(aircraft))
	}
}

// RetireAircraftHandler handles DELETE /api/v1/fleet/{id}.
func RetireAircraftHandler(fleetSvc *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		if err := fleetSvc.RetireAircraft(r.Context(), id); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Aircraft retired", nil)
	}
}

// ReportDefectHandler handles POST /api/v1/defects.
func ReportDefectHandler(fleetSvc *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.DefectReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		defect, err := fleetSvc.ReportDefect(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Defect reported", toDefectResp(defect), http.StatusCreated)
	}
}

// OpenDefectsHandler handles GET /api/v1/defects.
func OpenDefectsHandler(fleetSvc *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		defects, err := fleetSvc.OpenDefects(r.Context())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		out := make([]dtos.DefectResp, 0, len(defects))
		for i := range defects {
			out = append(out, toDefectResp(&defects[i]))
		}
		common.RespondSuccess(w, initTime, "Open defects fetched", out)
	}
}

// DefectStatusHandler handles PATCH /api/v1/defects/{id}/status.
func DefectStatusHandler(fleetSvc *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		var req dtos.DefectStatusReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		if err := fleetSvc.TransitionDefect(r.Context(), id, req.Status); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Defect status updated", nil)
	}
}

// LogRepairHandler handles POST /api/v1/defects/{id}/repairs.
func LogRepairHandler(fleetSvc *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		var req dtos.RepairReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		repair, err := fleetSvc.LogRepair(r.Context(), id, &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Repair logged", dtos.RepairResp{
			ID:            repair.ID,
			DefectID:      repair.DefectID,
			MechanicID:    repair.MechanicID,
			WorkPerformed: repair.WorkPerformed,
			PartsReplaced: repair.PartsReplaced,
		}, http.StatusCreated)
	}
}

// RecordInspectionHandler handles POST /api/v1/inspections.
func RecordInspectionHandler(fleetSvc *services.FleetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.InspectionReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		inspection, err := fleetSvc.RecordInspection(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Inspection recorded", dtos.InspectionResp{
			AircraftID:   inspection.AircraftID,
			InspectionID: inspection.ID,
			Date:         inspection.Date.Format("2006-01-02"),
			Type:         string(inspection.Type),
		}, http.StatusCreated)
	}
}
