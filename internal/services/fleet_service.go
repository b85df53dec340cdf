package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/db/repositories"
	"aeroclub/logbook/internal/logging"
	"aeroclub/logbook/internal/metrics"
	"aeroclub/logbook/internal/models/dtos"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

// FleetService manages airframes and their technical state: defects,
// repairs and inspections.
type FleetService struct {
	aircraftRepo *repositories.AircraftRepository
	maintRepo    *repositories.MaintenanceRepository
	cache        common.CacheInterface
	metricsReg   *metrics.MetricsRegistry
}

func NewFleetService(
	aircraftRepo *repositories.AircraftRepository,
	maintRepo *repositories.MaintenanceRepository,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *FleetService {
	return &FleetService{
		aircraftRepo: aircraftRepo,
		maintRepo:    maintRepo,
		cache:        cache,
		metricsReg:   metricsReg,
	}
}

func (s *FleetService) CreateAircraft(ctx context.Context, req *dtos.AircraftReq) (*gormModels.Aircraft, error) {
	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil || rate.IsNegative() {
		return nil, badRequest("BAD_RATE", "hourly rate must be a non-negative amount")
	}
	if strings.TrimSpace(req.Registration) == "" {
		return nil, badRequest("BAD_REGISTRATION", "registration mark is required")
	}

	aircraft := &gormModels.Aircraft{
		Type:         strings.TrimSpace(req.Type),
		Registration: strings.TrimSpace(req.Registration),
		HourlyRate:   rate,
	}
	if err := s.aircraftRepo.Create(ctx, aircraft); err != nil {
		return nil, err
	}

	s.cache.Delete(string(constants.CachePrefixFleetList) + "active")
	logging.Info("AIRCRAFT_CREATED", "aircraft_id", aircraft.ID, "registration", aircraft.Registration)
	return aircraft, nil
}

func (s *FleetService) UpdateAircraft(ctx context.Context, id int64, req *dtos.AircraftReq) (*gormModels.Aircraft, error) {
	aircraft, err := s.aircraftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil || rate.IsNegative() {
		return nil, badRequest("BAD_RATE", "hourly rate must be a non-negative amount")
	}

	aircraft.Type = strings.TrimSpace(req.Type)
	aircraft.Registration = strings.TrimSpace(req.Registration)
	aircraft.HourlyRate = rate
	if err := s.aircraftRepo.Update(ctx, aircraft); err != nil {
		return nil, err
	}

	s.cache.Delete(string(constants.CachePrefixFleetList) + "active")
	return aircraft, nil
}

// RetireAircraft soft-deletes an airframe; historical flights keep their
// reference.
func (s *FleetService) RetireAircraft(ctx context.Context, id int64) error {
	if err := s.aircraftRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(string(constants.CachePrefixFleetList) + "active")
	logging.Info("AIRCRAFT_RETIRED", "aircraft_id", id)
	return nil
}

func (s *FleetService) ReportDefect(ctx context.Context, req *dtos.DefectReq) (*gormModels.Defect, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, badRequest("BAD_DEFECT", "defect description is required")
	}
	if _, err := s.aircraftRepo.GetByID(ctx, req.AircraftID); err != nil {
		return nil, badRequest("UNKNOWN_AIRCRAFT", "aircraft %d not found", req.AircraftID)
	}

	defect := &gormModels.Defect{
		AircraftID:  req.AircraftID,
		Description: strings.TrimSpace(req.Description),
		Status:      constants.DefectOpen,
	}
	if err := s.maintRepo.CreateDefect(ctx, defect); err != nil {
		return nil, err
	}

	logging.Info("DEFECT_REPORTED", "defect_id", defect.ID, "aircraft_id", defect.AircraftID)
	return defect, nil
}

// TransitionDefect moves a defect forward through its lifecycle. Backward
// transitions are rejected; closing is always an explicit action, never a
// side effect of logging a repair.
func (s *FleetService) TransitionDefect(ctx context.Context, id int64, statusStr string) error {
	status := constants.DefectStatus(statusStr)
	switch status {
	case constants.DefectOpen, constants.DefectInProgress, constants.DefectClosed:
	default:
		return badRequest("BAD_STATUS", "unknown defect status %q", statusStr)
	}

	defect, err := s.maintRepo.GetDefect(ctx, id)
	if err != nil {
		return err
	}
	if !defect.Status.CanTransitionTo(status) {
		return badRequest("BAD_TRANSITION", "defect cannot move from %s back to %s", defect.Status, status)
	}

	if err := s.maintRepo.UpdateDefectStatus(ctx, id, status); err != nil {
		return err
	}

	if s.metricsReg != nil {
		s.metricsReg.DefectStatusChanges.WithLabelValues(string(status)).Inc()
	}
	logging.Info("DEFECT_STATUS_CHANGED", "defect_id", id, "status", string(status))
	return nil
}

// LogRepair records work performed against an existing defect.
func (s *FleetService) LogRepair(ctx context.Context, defectID int64, req *dtos.RepairReq) (*gormModels.Repair, error) {
	if _, err := s.maintRepo.GetDefect(ctx, defectID); err != nil {
		return nil, badRequest("UNKNOWN_DEFECT", "defect %d not found", defectID)
	}
	if strings.TrimSpace(req.WorkPerformed) == "" {
		return nil, badRequest("BAD_REPAIR", "work description is required")
	}

	repair := &gormModels.Repair{
		DefectID:      defectID,
		MechanicID:    req.MechanicID,
		WorkPerformed: strings.TrimSpace(req.WorkPerformed),
		PartsReplaced: strings.TrimSpace(req.PartsReplaced),
	}
	if err := s.maintRepo.CreateRepair(ctx, repair); err != nil {
		return nil, err
	}

	logging.Info("REPAIR_LOGGED", "repair_id", repair.ID, "defect_id", defectID)
	return repair, nil
}

func (s *FleetService) RecordInspection(ctx context.Context, req *dtos.InspectionReq) (*gormModels.Inspection, error) {
	if _, err := s.aircraftRepo.GetByID(ctx, req.AircraftID); err != nil {
		return nil, badRequest("UNKNOWN_AIRCRAFT", "aircraft %d not found", req.AircraftID)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, badRequest("BAD_DATE", "invalid inspection date %q", req.Date)
	}

	inspection := &gormModels.Inspection{
		AircraftID: req.AircraftID,
		Date:       date,
		Type:       constants.InspectionType(req.Type),
		Remarks:    req.Remarks,
	}
	if err := s.maintRepo.CreateInspection(ctx, inspection); err != nil {
		return nil, err
	}

	logging.Info("INSPECTION_RECORDED", "inspection_id", inspection.ID, "aircraft_id", inspection.AircraftID)
	return inspection, nil
}

func (s *FleetService) OpenDefects(ctx context.Context) ([]gormModels.Defect, error) {
	return s.maintRepo.ListOpenDefects(ctx)
}
