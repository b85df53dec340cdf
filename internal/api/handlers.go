package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/engine"
	"aeroclub/logbook/internal/models/dtos"
	"aeroclub/logbook/internal/services"
)

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// decodeBody parses the JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("malformed request body")
	}
	return nil
}

// respondServiceError maps service failures onto the response envelope:
// engine rule violations become 422 with the rule code attached, input
// problems 400, missing records 404, everything else 500.
func respondServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	var timeErr *engine.TimeOrderError
	if errors.As(err, &timeErr) {
		common.RespondRuleViolation(w, initTime, dtos.ErrorDetail{
			Code:    timeErr.Code(),
			Message: timeErr.Error(),
		})
		return
	}

	var safetyErr *engine.SafetyError
	if errors.As(err, &safetyErr) {
		common.RespondRuleViolation(w, initTime, dtos.ErrorDetail{
			Code:     safetyErr.Code(),
			Message:  safetyErr.Error(),
			FlightID: safetyErr.FlightID,
		})
		return
	}

	var reqErr *services.RequestError
	if errors.As(err, &reqErr) {
		common.RespondError(w, initTime, reqErr, "", http.StatusBadRequest)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		common.RespondError(w, initTime, err, "record not found", http.StatusNotFound)
		return
	}

	common.RespondError(w, initTime, err, "internal error")
}
