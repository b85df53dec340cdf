package api

import (
	"net/http"
	"time"

	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/models/dtos"
	"aeroclub/logbook/internal/services"
)

// RecordPaymentHandler handles POST /api/v1/payments.
func RecordPaymentHandler(setSvc *services.SettlementService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.PaymentReq
		if err := decodeBody(r, &req); err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		payment, err := setSvc.RecordPayment(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Payment recorded", dtos.PaymentResp{
			ID:      payment.ID,
			PilotID: payment.PilotID,
			Amount:  payment.Amount.StringFixed(2),
			Label:   payment.Label,
			PaidAt:  payment.PaidAt.Format(time.RFC3339),
		}, http.StatusCreated)
	}
}

// SettleFlightHandler handles POST /api/v1/flights/{id}/settle.
func SettleFlightHandler(setSvc *services.SettlementService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		resp, err := setSvc.SettleFlight(r.Context(), id)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Flight settled", resp)
	}
}

// SettleAllHandler handles POST /api/v1/settlements/run, the manual trigger
// for the same sweep the background job runs on its interval.
func SettleAllHandler(setSvc *services.SettlementService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		settled, err := setSvc.SettleAll(r.Context())
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Settlement sweep completed", map[string]int{"settled": settled})
	}
}
