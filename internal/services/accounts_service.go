package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"aeroclub/logbook/internal/common"
	"aeroclub/logbook/internal/constants"
	"aeroclub/logbook/internal/db/repositories"
	"aeroclub/logbook/internal/logging"
	"aeroclub/logbook/internal/models/dtos"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

const minPasswordLen = 8

// AccountsService administers membership: pilot records and the user
// accounts that may act on their behalf.
type AccountsService struct {
	userRepo  *repositories.UserRepository
	pilotRepo *repositories.PilotRepository
	cache     common.CacheInterface
}

func NewAccountsService(userRepo *repositories.UserRepository, pilotRepo *repositories.PilotRepository, cache common.CacheInterface) *AccountsService {
	return &AccountsService{userRepo: userRepo, pilotRepo: pilotRepo, cache: cache}
}

func (s *AccountsService) CreateAccount(ctx context.Context, req *dtos.AccountReq) (*gormModels.UserAccount, error) {
	login := strings.TrimSpace(req.Login)
	if login == "" {
		return nil, badRequest("BAD_LOGIN", "login is required")
	}
	if len(req.Password) < minPasswordLen {
		return nil, badRequest("WEAK_PASSWORD", "password must be at least %d characters", minPasswordLen)
	}

	role := constants.AccountRole(req.Role)
	switch role {
	case constants.AccountRolePilot, constants.AccountRoleMechanic, constants.AccountRoleAdmin:
	default:
		return nil, badRequest("BAD_ROLE", "unknown account role %q", req.Role)
	}

	// A pilot account must point at exactly one live pilot record, and
	// each pilot record carries at most one account.
	if role == constants.AccountRolePilot {
		if req.PilotID == nil {
			return nil, badRequest("MISSING_PILOT", "pilot accounts require a pilot_id")
		}
		if _, err := s.pilotRepo.GetByID(ctx, *req.PilotID); err != nil {
			return nil, badRequest("UNKNOWN_PILOT", "pilot %d not found", *req.PilotID)
		}
		n, err := s.userRepo.CountByPilot(ctx, *req.PilotID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, badRequest("PILOT_TAKEN", "pilot %d already has an account", *req.PilotID)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &gormModels.UserAccount{
		Login:        login,
		PasswordHash: string(hash),
		Role:         role,
	}
	if role == constants.AccountRolePilot {
		account.PilotID = req.PilotID
	}
	if err := s.userRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	logging.Info("ACCOUNT_CREATED", "account_id", account.ID, "login", account.Login, "role", string(account.Role))
	return account, nil
}

// LockAccount soft-deletes an account so its login stops resolving. The
// linked pilot record is untouched.
func (s *AccountsService) LockAccount(ctx context.Context, id int64) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Lock(ctx, id); err != nil {
		return err
	}
	logging.Info("ACCOUNT_LOCKED", "account_id", id)
	return nil
}

func (s *AccountsService) CreatePilot(ctx context.Context, req *dtos.PilotReq) (*gormModels.Pilot, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, badRequest("BAD_NAME", "first and last name are required")
	}
	external, err := parseExternalAirtime(req.ExternalAirtime)
	if err != nil {
		return nil, err
	}

	pilot := &gormModels.Pilot{
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		License:         strings.TrimSpace(req.License),
		ShowName:        req.ShowName,
		ShowLicense:     req.ShowLicense,
		ExternalAirtime: external,
	}
	if err := s.pilotRepo.Create(ctx, pilot); err != nil {
		return nil, err
	}

	s.cache.Delete(string(constants.CachePrefixPilotList) + "active")
	logging.Info("PILOT_CREATED", "pilot_id", pilot.ID)
	return pilot, nil
}

func (s *AccountsService) UpdatePilot(ctx context.Context, id int64, req *dtos.PilotReq) (*gormModels.Pilot, error) {
	pilot, err := s.pilotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	external, err := parseExternalAirtime(req.ExternalAirtime)
	if err != nil {
		return nil, err
	}

	pilot.FirstName = strings.TrimSpace(req.FirstName)
	pilot.LastName = strings.TrimSpace(req.LastName)
	pilot.License = strings.TrimSpace(req.License)
	pilot.ShowName = req.ShowName
	pilot.ShowLicense = req.ShowLicense
	pilot.ExternalAirtime = external
	if err := s.pilotRepo.Update(ctx, pilot); err != nil {
		return nil, err
	}
	s.cache.Delete(string(constants.CachePrefixPilotList) + "active")
	return pilot, nil
}

// RetirePilot soft-deletes a pilot and unlinks any account that pointed at
// them. Flights the pilot flew stay on record for airtime history.
func (s *AccountsService) RetirePilot(ctx context.Context, id int64) error {
	if err := s.pilotRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(string(constants.CachePrefixPilotList) + "active")
	logging.Info("PILOT_RETIRED", "pilot_id", id)
	return nil
}

func parseExternalAirtime(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, badRequest("BAD_AIRTIME", "external airtime must be a non-negative number of hours")
	}
	return d, nil
}
