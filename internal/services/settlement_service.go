package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"aeroclub/logbook/internal/db/repositories"
	"aeroclub/logbook/internal/engine"
	"aeroclub/logbook/internal/logging"
	"aeroclub/logbook/internal/metrics"
	"aeroclub/logbook/internal/models/dtos"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

// SettlementService turns accepted flights into ledger debits: compute the
// total cost, allocate it across the roster, append the debits and flip the
// settled flag, all per flight and idempotent via that flag.
type SettlementService struct {
	flightRepo   *repositories.FlightRepository
	aircraftRepo *repositories.AircraftRepository
	pilotRepo    *repositories.PilotRepository
	ledgerRepo   *repositories.LedgerRepository
	metricsReg   *metrics.MetricsRegistry
}

func NewSettlementService(
	flightRepo *repositories.FlightRepository,
	aircraftRepo *repositories.AircraftRepository,
	pilotRepo *repositories.PilotRepository,
	ledgerRepo *repositories.LedgerRepository,
	metricsReg *metrics.MetricsRegistry,
) *SettlementService {
	return &SettlementService{
		flightRepo:   flightRepo,
		aircraftRepo: aircraftRepo,
		pilotRepo:    pilotRepo,
		ledgerRepo:   ledgerRepo,
		metricsReg:   metricsReg,
	}
}

// RecordPayment credits a pilot's balance. Payments are append-only; a
// mistaken payment is corrected with a counter-entry, never edited.
func (s *SettlementService) RecordPayment(ctx context.Context, req *dtos.PaymentReq) (*gormModels.Payment, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, badRequest("BAD_AMOUNT", "payment amount must be a positive amount")
	}
	if _, err := s.pilotRepo.GetByID(ctx, req.PilotID); err != nil {
		return nil, badRequest("UNKNOWN_PILOT", "pilot %d not found", req.PilotID)
	}

	payment := &gormModels.Payment{
		PilotID: req.PilotID,
		Amount:  amount,
		Label:   req.Label,
		PaidAt:  time.Now().UTC(),
	}
	if err := s.ledgerRepo.RecordPayment(ctx, payment); err != nil {
		return nil, err
	}

	logging.Info("PAYMENT_RECORDED", "payment_id", payment.ID, "pilot_id", payment.PilotID, "amount", amount.StringFixed(2))
	return payment, nil
}

// SettleFlight bills one flight. Settling an already settled or deleted
// flight is rejected, never double-billed.
func (s *SettlementService) SettleFlight(ctx context.Context, flightID int64) (*dtos.SettlementResponse, error) {
	flight, err := s.flightRepo.GetWithCrew(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight.DeletedAt != nil {
		return nil, badRequest("FLIGHT_DELETED", "flight %d has been deleted", flightID)
	}
	if flight.Settled {
		return nil, badRequest("ALREADY_SETTLED", "flight %d is already settled", flightID)
	}

	return s.settle(ctx, flight)
}

// SettleAll bills every unsettled live flight; used by the background
// sweep. Returns how many flights were settled.
func (s *SettlementService) SettleAll(ctx context.Context) (int, error) {
	flights, err := s.flightRepo.ListUnsettled(ctx)
	if err != nil {
		return 0, err
	}

	settled := 0
	for i := range flights {
		if _, err := s.settle(ctx, &flights[i]); err != nil {
			// One bad flight must not block the rest of the sweep.
			logging.Error("SETTLEMENT_FAILED", "flight_id", flights[i].ID, "error", err.Error())
			continue
		}
		settled++
	}
	return settled, nil
}

func (s *SettlementService) settle(ctx context.Context, flight *gormModels.Flight) (*dtos.SettlementResponse, error) {
	aircraft, err := s.aircraftRepo.GetByID(ctx, flight.AircraftID)
	if err != nil {
		return nil, err
	}

	flightEnt := flight.ToEntity()
	roster := gormModels.CrewToEntities(flight.CrewAssignments)

	total := engine.ComputeCost(flightEnt, aircraft.ToEntity(), roster)
	alloc, err := engine.Allocate(flightEnt.ID, total, roster)
	if err != nil {
		// Unreachable when crew validation accepted the roster; treat as a
		// logic failure, not user input.
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	resp := &dtos.SettlementResponse{
		FlightID:  flightEnt.ID,
		TotalCost: total.StringFixed(2),
	}

	// Stable pilot order keeps settlement output auditable.
	pilotIDs := make([]int64, 0, len(alloc))
	for pilotID := range alloc {
		pilotIDs = append(pilotIDs, pilotID)
	}
	sort.Slice(pilotIDs, func(i, j int) bool { return pilotIDs[i] < pilotIDs[j] })

	var debits []gormModels.LedgerEntry
	for _, pilotID := range pilotIDs {
		amount := alloc[pilotID]
		resp.Allocations = append(resp.Allocations, dtos.AllocationEntry{
			PilotID: pilotID,
			Amount:  amount.StringFixed(2),
		})
		if amount.IsZero() {
			continue
		}
		debits = append(debits, gormModels.LedgerEntry{
			PilotID: pilotID,
			Amount:  amount,
			Label:   fmt.Sprintf("Flight %d (%s)", flightEnt.ID, aircraft.Registration),
			At:      flightEnt.Landing,
		})
	}

	if err := s.ledgerRepo.AppendDebits(ctx, flightEnt.ID, debits); err != nil {
		return nil, err
	}

	if s.metricsReg != nil {
		s.metricsReg.SettlementsIssued.Inc()
	}
	logging.Info("SETTLEMENT_ISSUED",
		"flight_id", flightEnt.ID,
		"total_cost", resp.TotalCost,
		"debits", len(debits),
	)

	return resp, nil
}
