package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"aeroclub/logbook/internal/auth"
	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/db/repositories"
	"aeroclub/logbook/internal/engine"
	"aeroclub/logbook/internal/models/dtos"
	"aeroclub/logbook/internal/models/entities"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

const maskedName = "***"

// StatsService derives the report views: airtime rankings, fleet life
// hours, running balances and inspection status. Everything is recomputed
// on demand from live records; only the reference pilot list is cached.
type StatsService struct {
	pilotRepo    *repositories.PilotRepository
	aircraftRepo *repositories.AircraftRepository
	maintRepo    *repositories.MaintenanceRepository
	ledgerRepo   *repositories.LedgerRepository
	reportsRepo  *repositories.ReportsRepository
	cache        common.CacheInterface

	minimumAirtime decimal.Decimal
}

func NewStatsService(
	pilotRepo *repositories.PilotRepository,
	aircraftRepo *repositories.AircraftRepository,
	maintRepo *repositories.MaintenanceRepository,
	ledgerRepo *repositories.LedgerRepository,
	reportsRepo *repositories.ReportsRepository,
	cache common.CacheInterface,
	minimumAirtime decimal.Decimal,
) *StatsService {
	if minimumAirtime.IsZero() {
		minimumAirtime = engine.DefaultMinimumAirtime
	}
	return &StatsService{
		pilotRepo:      pilotRepo,
		aircraftRepo:   aircraftRepo,
		maintRepo:      maintRepo,
		ledgerRepo:     ledgerRepo,
		reportsRepo:    reportsRepo,
		cache:          cache,
		minimumAirtime: minimumAirtime,
	}
}

// PilotRanking returns pilots at or above the minimum-airtime threshold,
// most hours first. Names of pilots who withheld consent are masked unless
// the caller is privileged or looking at their own row.
func (s *StatsService) PilotRanking(ctx context.Context, principal *auth.Principal) ([]dtos.PilotAirtimeResp, error) {
	pilots, err := s.listPilotsCached(ctx)
	if err != nil {
		return nil, err
	}

	totals := make([]engine.AirtimeTotal, 0, len(pilots))
	for i := range pilots {
		flights, err := s.pilotRepo.ListFlights(ctx, pilots[i].ID)
		if err != nil {
			return nil, err
		}
		totals = append(totals, engine.AirtimeTotal{
			Pilot:   pilots[i].ToEntity(),
			Airtime: engine.PilotAirtime(pilots[i].ToEntity(), flightsToEntities(flights)),
		})
	}

	ranked := engine.FilterByMinimumAirtime(totals, s.minimumAirtime)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Airtime.GreaterThan(ranked[j].Airtime)
	})

	out := make([]dtos.PilotAirtimeResp, 0, len(ranked))
	for _, t := range ranked {
		resp := dtos.PilotAirtimeResp{
			PilotID: t.Pilot.ID,
			Name:    t.Pilot.FullName(),
			License: t.Pilot.License,
			Airtime: t.Airtime.Round(2).String(),
		}
		if !canSeePilot(principal, t.Pilot.ID, t.Pilot.ShowName) {
			resp.Name = maskedName
		}
		if !canSeePilot(principal, t.Pilot.ID, t.Pilot.ShowLicense) {
			resp.License = ""
		}
		out = append(out, resp)
	}
	return out, nil
}

// FleetReport returns life hours and open defect counts per active
// airframe, highest time first.
func (s *StatsService) FleetReport(ctx context.Context) ([]dtos.AircraftAirtimeResp, error) {
	fleet, err := s.aircraftRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	defectCounts, err := s.maintRepo.CountOpenDefects(ctx)
	if err != nil {
		return nil, err
	}

	type row struct {
		resp  dtos.AircraftAirtimeResp
		hours decimal.Decimal
	}
	rows := make([]row, 0, len(fleet))
	for i := range fleet {
		flights, err := s.aircraftRepo.ListFlights(ctx, fleet[i].ID)
		if err != nil {
			return nil, err
		}
		hours := engine.AircraftAirtime(flightsToEntities(flights))
		rows = append(rows, row{
			resp: dtos.AircraftAirtimeResp{
				AircraftID:   fleet[i].ID,
				Registration: fleet[i].Registration,
				Type:         fleet[i].Type,
				LifeHours:    hours.Round(2).String(),
				OpenDefects:  defectCounts[fleet[i].ID],
			},
			hours: hours,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].hours.GreaterThan(rows[j].hours) })

	out := make([]dtos.AircraftAirtimeResp, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.resp)
	}
	return out, nil
}

// PilotBalance replays a pilot's ledger into a running balance, optionally
// with the full step-by-step history.
func (s *StatsService) PilotBalance(ctx context.Context, pilotID int64, withHistory bool) (*dtos.PilotBalanceResp, error) {
	pilot, err := s.pilotRepo.GetByID(ctx, pilotID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.ListEntriesByPilot(ctx, pilotID)
	if err != nil {
		return nil, err
	}

	points := engine.RunningBalance(gormModels.LedgerToEntities(entries))

	resp := &dtos.PilotBalanceResp{
		PilotID: pilotID,
		Name:    pilot.ToEntity().FullName(),
		Balance: "0.00",
	}
	if len(points) > 0 {
		resp.Balance = points[len(points)-1].Balance.StringFixed(2)
	}
	if withHistory {
		for _, p := range points {
			resp.History = append(resp.History, dtos.BalancePointResp{
				At:      p.Entry.At.Format(time.RFC3339),
				Kind:    string(p.Entry.Kind),
				Label:   p.Entry.Label,
				Amount:  p.Entry.Signed().StringFixed(2),
				Balance: p.Balance.StringFixed(2),
			})
		}
	}
	return resp, nil
}

// Debtors lists every outstanding settlement debit with flight context.
// Admin-only, so names are never masked here.
func (s *StatsService) Debtors(ctx context.Context) ([]dtos.DebtorResp, error) {
	rows, err := s.reportsRepo.Debtors(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dtos.DebtorResp, 0, len(rows))
	for _, row := range rows {
		out = append(out, dtos.DebtorResp{
			PilotID:      row.PilotID,
			Name:         row.FirstName + " " + row.LastName,
			FlightID:     row.FlightID,
			Registration: row.Registration,
			Amount:       row.Amount.StringFixed(2),
		})
	}
	return out, nil
}

// LatestInspections derives the most recent inspection per aircraft.
func (s *StatsService) LatestInspections(ctx context.Context) ([]dtos.InspectionResp, error) {
	inspections, err := s.maintRepo.ListInspections(ctx)
	if err != nil {
		return nil, err
	}

	latest := engine.LatestInspections(inspectionsToEntities(inspections))

	ids := make([]int64, 0, len(latest))
	for aircraftID := range latest {
		ids = append(ids, aircraftID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]dtos.InspectionResp, 0, len(ids))
	for _, aircraftID := range ids {
		insp := latest[aircraftID]
		out = append(out, dtos.InspectionResp{
			AircraftID:   aircraftID,
			InspectionID: insp.ID,
			Date:         insp.Date.Format("2006-01-02"),
			Type:         insp.Type.String(),
		})
	}
	return out, nil
}

// Dashboard assembles all report sections concurrently.
func (s *StatsService) Dashboard(ctx context.Context, principal *auth.Principal) (*dtos.DashboardResponse, error) {
	resp := &dtos.DashboardResponse{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ranking, err := s.PilotRanking(gctx, principal)
		if err == nil {
			resp.PilotRanking = ranking
		}
		return err
	})
	g.Go(func() error {
		fleet, err := s.FleetReport(gctx)
		if err == nil {
			resp.Fleet = fleet
		}
		return err
	})
	g.Go(func() error {
		inspections, err := s.LatestInspections(gctx)
		if err == nil {
			resp.Inspections = inspections
		}
		return err
	})
	g.Go(func() error {
		summaries, err := s.reportsRepo.BalanceSummaries(gctx)
		if err != nil {
			return err
		}
		outstanding := decimal.Zero
		for _, row := range summaries {
			balance := dtos.PilotBalanceResp{
				PilotID: row.PilotID,
				Name:    row.FirstName + " " + row.LastName,
				Balance: row.Balance.StringFixed(2),
			}
			if !canSeePilot(principal, row.PilotID, row.ShowName) {
				balance.Name = maskedName
			}
			resp.Balances = append(resp.Balances, balance)
			if row.Balance.IsNegative() {
				outstanding = outstanding.Add(row.Balance.Neg())
			}
		}
		resp.TotalOutstand = outstanding.StringFixed(2)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

// listPilotsCached serves the active pilot list through the reference-data
// cache; aggregates themselves are never cached.
func (s *StatsService) listPilotsCached(ctx context.Context) ([]gormModels.Pilot, error) {
	key := string(constants.CachePrefixPilotList) + "active"
	val, err := s.cache.GetOrSet(key, 60*time.Second, func() (any, error) {
		return s.pilotRepo.ListActive(ctx)
	})
	if err != nil {
		return nil, err
	}
	if pilots, ok := val.([]gormModels.Pilot); ok {
		return pilots, nil
	}
	// The Redis backend round-trips cached values through JSON; recover the
	// concrete slice so the shared cache still serves the hit.
	if raw, err := json.Marshal(val); err == nil {
		var pilots []gormModels.Pilot
		if err := json.Unmarshal(raw, &pilots); err == nil {
			return pilots, nil
		}
	}
	return s.pilotRepo.ListActive(ctx)
}

// canSeePilot applies the consent rules: privileged roles see everything,
// everyone sees themselves, otherwise the pilot's own flag decides.
func canSeePilot(principal *auth.Principal, pilotID int64, consent bool) bool {
	if consent {
		return true
	}
	if principal == nil {
		return false
	}
	if principal.IsPrivileged() {
		return true
	}
	return principal.PilotID != nil && *principal.PilotID == pilotID
}

func flightsToEntities(flights []gormModels.Flight) []entities.Flight {
	out := make([]entities.Flight, 0, len(flights))
	for i := range flights {
		out = append(out, flights[i].ToEntity())
	}
	return out
}

func inspectionsToEntities(inspections []gormModels.Inspection) []entities.Inspection {
	out := make([]entities.Inspection, 0, len(inspections))
	for i := range inspections {
		out = append(out, inspections[i].ToEntity())
	}
	return out
}
