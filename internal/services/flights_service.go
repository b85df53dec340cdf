package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/db/repositories"
	"aeroclub/logbook/internal/engine"
	"aeroclub/logbook/internal/logging"
	"aeroclub/logbook/internal/metrics"
	"aeroclub/logbook/internal/models/dtos"
	"aeroclub/logbook/internal/models/entities"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

// FlightsService owns the flight record mutation pipeline: every create and
// edit passes the chronology and crew-safety validators before anything is
// committed, so storage never holds a record the engine rejected.
type FlightsService struct {
	flightRepo   *repositories.FlightRepository
	aircraftRepo *repositories.AircraftRepository
	metricsReg   *metrics.MetricsRegistry
}

func NewFlightsService(
	flightRepo *repositories.FlightRepository,
	aircraftRepo *repositories.AircraftRepository,
	metricsReg *metrics.MetricsRegistry,
) *FlightsService {
	return &FlightsService{
		flightRepo:   flightRepo,
		aircraftRepo: aircraftRepo,
		metricsReg:   metricsReg,
	}
}

// CreateFlight validates and commits a new logbook entry. A defect text in
// the request opens a defect against the aircraft in the same transaction.
func (s *FlightsService) CreateFlight(ctx context.Context, req *dtos.FlightReq) (*dtos.FlightResponse, error) {
	flight, crew, err := s.buildAndValidate(ctx, 0, req)
	if err != nil {
		return nil, err
	}

	model := toFlightModel(flight)
	crewModels := toCrewModels(crew)

	var defect *gormModels.Defect
	if strings.TrimSpace(req.Defect) != "" {
		defect = &gormModels.Defect{
			Description: strings.TrimSpace(req.Defect),
			Status:      constants.DefectOpen,
		}
	}

	if err := s.flightRepo.CreateWithCrew(ctx, model, crewModels, defect); err != nil {
		return nil, fmt.Errorf("commit flight: %w", err)
	}

	logging.Info("FLIGHT_CREATED",
		"flight_id", model.ID,
		"aircraft_id", model.AircraftID,
		"crew_size", len(crewModels),
		"has_defect", defect != nil,
	)

	return s.toResponse(model, crewModels), nil
}

// UpdateFlight re-validates the complete record with the edited values and
// replaces it atomically. A rejection leaves the stored record untouched.
func (s *FlightsService) UpdateFlight(ctx context.Context, id int64, req *dtos.FlightReq) (*dtos.FlightResponse, error) {
	existing, err := s.flightRepo.GetWithCrew(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.DeletedAt != nil {
		return nil, badRequest("FLIGHT_DELETED", "flight %d has been deleted", id)
	}
	// Issued debits would no longer match a recomputed cost.
	if existing.Settled {
		return nil, badRequest("FLIGHT_SETTLED", "flight %d has already been settled", id)
	}

	flight, crew, err := s.buildAndValidate(ctx, id, req)
	if err != nil {
		return nil, err
	}

	model := toFlightModel(flight)
	model.ID = id
	model.Settled = existing.Settled
	model.CreatedAt = existing.CreatedAt
	crewModels := toCrewModels(crew)

	if err := s.flightRepo.UpdateWithCrew(ctx, model, crewModels); err != nil {
		return nil, fmt.Errorf("commit flight edit: %w", err)
	}

	logging.Info("FLIGHT_UPDATED", "flight_id", id, "crew_size", len(crewModels))

	return s.toResponse(model, crewModels), nil
}

// DeleteFlight soft-deletes a record; history and defect references stay.
func (s *FlightsService) DeleteFlight(ctx context.Context, id int64) error {
	if err := s.flightRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	logging.Info("FLIGHT_DELETED", "flight_id", id)
	return nil
}

func (s *FlightsService) GetFlight(ctx context.Context, id int64) (*dtos.FlightResponse, error) {
	flight, err := s.flightRepo.GetWithCrew(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(flight, flight.CrewAssignments), nil
}

func (s *FlightsService) ListFlights(ctx context.Context, limit int) ([]dtos.FlightResponse, error) {
	flights, err := s.flightRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dtos.FlightResponse, 0, len(flights))
	for i := range flights {
		out = append(out, *s.toResponse(&flights[i], flights[i].CrewAssignments))
	}
	return out, nil
}

// buildAndValidate turns the request into engine entities and runs both
// validators against the full intended state. The returned outcome metric
// label is either "accepted" or the violated rule code.
func (s *FlightsService) buildAndValidate(ctx context.Context, flightID int64, req *dtos.FlightReq) (entities.Flight, []entities.CrewAssignment, error) {
	var zero entities.Flight

	start, err := ParseTimestamp("start", req.Start)
	if err != nil {
		return zero, nil, err
	}
	landing, err := ParseTimestamp("landing", req.Landing)
	if err != nil {
		return zero, nil, err
	}

	if _, err := s.aircraftRepo.GetByID(ctx, req.AircraftID); err != nil {
		return zero, nil, badRequest("UNKNOWN_AIRCRAFT", "aircraft %d not found", req.AircraftID)
	}

	crew := make([]entities.CrewAssignment, 0, len(req.Crew))
	for _, m := range req.Crew {
		role, err := ParseCrewRole(m.Role)
		if err != nil {
			return zero, nil, err
		}
		crew = append(crew, entities.CrewAssignment{
			FlightID: flightID,
			PilotID:  m.PilotID,
			Role:     role,
		})
	}

	flight := entities.Flight{
		ID:                flightID,
		AircraftID:        req.AircraftID,
		Start:             start,
		Landing:           landing,
		LaunchMethod:      ParseLaunchMethod(req.LaunchMethod),
		DepartureAirfield: req.DepartureAirfield,
		ArrivalAirfield:   req.ArrivalAirfield,
		SupervisorID:      req.SupervisorID,
		Remarks:           req.Remarks,
	}

	if err := engine.ValidateChronology(flight.Start, flight.Landing); err != nil {
		s.recordOutcome(constants.ErrCodeTimeOrder)
		return zero, nil, err
	}
	if err := engine.ValidateCrew(flight, crew); err != nil {
		if safetyErr, ok := err.(*engine.SafetyError); ok {
			s.recordOutcome(safetyErr.Code())
		}
		return zero, nil, err
	}

	s.recordOutcome("accepted")
	return flight, crew, nil
}

func (s *FlightsService) recordOutcome(outcome string) {
	if s.metricsReg != nil {
		s.metricsReg.FlightsValidatedTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *FlightsService) toResponse(flight *gormModels.Flight, crew []gormModels.CrewAssignment) *dtos.FlightResponse {
	e := flight.ToEntity()
	resp := &dtos.FlightResponse{
		ID:                e.ID,
		AircraftID:        e.AircraftID,
		FlightDate:        e.FlightDate().Format("2006-01-02"),
		Start:             e.Start.Format(time.RFC3339),
		Landing:           e.Landing.Format(time.RFC3339),
		DurationHours:     engine.DurationHours(e.Duration()).Round(2).String(),
		LaunchMethod:      e.LaunchMethod.String(),
		DepartureAirfield: e.DepartureAirfield,
		ArrivalAirfield:   e.ArrivalAirfield,
		SupervisorID:      e.SupervisorID,
		Remarks:           e.Remarks,
		Settled:           e.Settled,
		Deleted:           flight.DeletedAt != nil,
	}
	for _, c := range crew {
		resp.Crew = append(resp.Crew, dtos.CrewMemberResp{
			PilotID: c.PilotID,
			Role:    c.Role.String(),
		})
	}
	return resp
}

func toFlightModel(f entities.Flight) *gormModels.Flight {
	return &gormModels.Flight{
		ID:                f.ID,
		AircraftID:        f.AircraftID,
		Start:             f.Start,
		Landing:           f.Landing,
		LaunchMethod:      f.LaunchMethod,
		DepartureAirfield: f.DepartureAirfield,
		ArrivalAirfield:   f.ArrivalAirfield,
		SupervisorID:      f.SupervisorID,
		Remarks:           f.Remarks,
		Settled:           f.Settled,
	}
}

func toCrewModels(crew []entities.CrewAssignment) []gormModels.CrewAssignment {
	out := make([]gormModels.CrewAssignment, 0, len(crew))
	for _, c := range crew {
		out = append(out, gormModels.CrewAssignment{
			FlightID: c.FlightID,
			PilotID:  c.PilotID,
			Role:     c.Role,
		})
	}
	return out
}
