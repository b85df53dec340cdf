package api

import (
	"net/http"
	"time"

	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/models/dtos"
	"aeroclub/logbook/internal/services"
)

// CreateAccountHandler handles POST /api/v1/accounts.
func CreateAccountHandler(accSvc *services.AccountsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AccountReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		account, err := accSvc.CreateAccount(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Account created", dtos.AccountResp{
			ID:      account.ID,
			Login:   account.Login,
			Role:    string(account.Role),
			PilotID: account.PilotID,
		}, http.StatusCreated)
	}
}

// LockAccountHandler handles POST /api/v1/accounts/{id}/lock.
func LockAccountHandler(accSvc *services.AccountsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		if err := accSvc.LockAccount(r.Context(), id); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Account locked", nil)
	}
}

// CreatePilotHandler handles POST /api/v1/pilots.
func CreatePilotHandler(accSvc *services.AccountsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.PilotReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		pilot, err := accSvc.CreatePilot(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pilot created", dtos.PilotResp{
			ID:          pilot.ID,
			FirstName:   pilot.FirstName,
			LastName:    pilot.LastName,
			License:     pilot.License,
			ShowName:    pilot.ShowName,
			ShowLicense: pilot.ShowLicense,
		}, http.StatusCreated)
	}
}

// UpdatePilotHandler handles PUT /api/v1/pilots/{id}.
func UpdatePilotHandler(accSvc *services.AccountsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		var req dtos.PilotReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		pilot, err := accSvc.UpdatePilot(r.Context(), id, &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pilot updated", dtos.PilotResp{
			ID:          pilot.ID,
			FirstName:   pilot.FirstName,
			LastName:    pilot.LastName,
			License:     pilot.License,
			ShowName:    pilot.ShowName,
			ShowLicense: pilot.ShowLicense,
		})
	}
}

// RetirePilotHandler handles DELETE /api/v1/pilots/{id}.
func RetirePilotHandler(accSvc *services.AccountsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		if err := accSvc.RetirePilot(r.Context(), id); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pilot retired", nil)
	}
}
