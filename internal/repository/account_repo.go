package repository

import (
	"context"

	"gorm.io/gorm"

	"weekboard/internal/model"
)

// AccountListFilters narrows the admin account listing.
type AccountListFilters struct {
	Status  model.AccountStatus
	Keyword string // matches name or email, case-insensitive
}

// AccountRepository is the account data-access interface.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *AccountListFilters, offset, limit int) ([]model.Account, int64, error)
	ListActive(ctx context.Context) ([]model.Account, error)
}

type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepo creates the GORM-backed AccountRepository.
func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("account_id = ?", id).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("account_id = ?", id).
		Delete(&model.Account{}).Error
}

func (r *accountRepo) List(ctx context.Context, filters *AccountListFilters, offset, limit int) ([]model.Account, int64, error) {
	var accounts []model.Account
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Account{})
	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Keyword != "" {
			pattern := "%" + filters.Keyword + "%"
			db = db.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&accounts).Error; err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func (r *accountRepo) ListActive(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.WithContext(ctx).
		Where("status = ?", model.AccountActive).
		Order("name ASC").
		Find(&accounts).Error
	return accounts, err
}
