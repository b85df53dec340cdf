package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"aeroclub/logbook/internal/models/entities"
	gormModels "aeroclub/logbook/internal/models/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new GORM-based user account repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByLogin resolves a login to its account. Implements the
// middleware.AccountLookup contract.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*entities.UserAccount, error) {
	var account gormModels.UserAccount
	err := r.db.WithContext(ctx).
		Where("login = ?", login).
		First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("account %q not found: %w", login, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	e := account.ToEntity()
	return &e, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*gormModels.UserAccount, error) {
	var account gormModels.UserAccount
	err := r.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("account %d not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return &account, nil
}

func (r *UserRepository) Create(ctx context.Context, account *gormModels.UserAccount) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, account *gormModels.UserAccount) error {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// Lock blocks an account from authenticating while keeping its history.
func (r *UserRepository) Lock(ctx context.Context, id int64) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&gormModels.UserAccount{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now)
	if res.Error != nil {
		return fmt.Errorf("failed to lock account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("account %d not found: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// CountByPilot reports how many accounts link a pilot profile; used to
// enforce the one-account-per-profile invariant at the service layer.
func (r *UserRepository) CountByPilot(ctx context.Context, pilotID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.UserAccount{}).
		Where("pilot_id = ?", pilotID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}
