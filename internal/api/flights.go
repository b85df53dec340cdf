package api

import (
	"net/http"
	"strconv"
	"time"

	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/models/dtos"
	"aeroclub/logbook/internal/services"
)

// CreateFlightHandler handles POST /api/v1/flights. The whole submission is
// validated before anything is stored; a rejection carries the rule code.
func CreateFlightHandler(fltSvc *services.FlightsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		resp, err := fltSvc.CreateFlight(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Flight recorded", resp, http.StatusCreated)
	}
}

// UpdateFlightHandler handles PUT /api/v1/flights/{id}.
func UpdateFlightHandler(fltSvc *services.FlightsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		var req dtos.FlightReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		resp, err := fltSvc.UpdateFlight(r.Context(), id, &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Flight updated", resp)
	}
}

// DeleteFlightHandler handles DELETE /api/v1/flights/{id}.
func DeleteFlightHandler(fltSvc *services.FlightsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		if err := fltSvc.DeleteFlight(r.Context(), id); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Flight deleted", nil)
	}
}

// GetFlightHandler handles GET /api/v1/flights/{id}.
func GetFlightHandler(fltSvc *services.FlightsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		resp, err := fltSvc.GetFlight(r.Context(), id)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Flight fetched", resp)
	}
}

// ListFlightsHandler handles GET /api/v1/flights?limit=n.
func ListFlightsHandler(fltSvc *services.FlightsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit := 50
		if qs := r.URL.Query().Get("limit"); qs != "" {
			n, err := strconv.Atoi(qs)
			if err != nil || n <= 0 {
				common.RespondError(w, initTime, nil, "invalid limit parameter", http.StatusBadRequest)
				return
			}
			limit = n
		}

		resp, err := fltSvc.ListFlights(r.Context(), limit)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Flights fetched", resp)
	}
}
