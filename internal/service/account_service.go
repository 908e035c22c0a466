package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"weekboard/internal/access"
	"weekboard/internal/dto"
	"weekboard/internal/model"
	"weekboard/internal/repository"
	"weekboard/pkg/apperr"
)

var (
	ErrAccountForbidden = apperr.New(apperr.KindAuthorization, "not allowed to manage this account")
	ErrAccountSelfOp    = apperr.New(apperr.KindValidation, "operation cannot target your own account")
)

// AccountService owns the administrative account lifecycle. It mirrors
// the schedule lifecycle: register yields pending, approval activates.
type AccountService interface {
	List(ctx context.Context, req *dto.AccountListRequest, actor Identity) ([]dto.AccountResponse, int64, error)
	Approve(ctx context.Context, id string, actor Identity) error
	Update(ctx context.Context, id string, req *dto.UpdateAccountRequest, actor Identity) (*dto.AccountResponse, error)
	ResetPassword(ctx context.Context, id string, actor Identity) (*dto.ResetPasswordResponse, error)
	Delete(ctx context.Context, id string, actor Identity) error
	ListActiveHosts(ctx context.Context) ([]dto.HostResponse, error)
}

type accountService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAccountService creates the AccountService.
func NewAccountService(repo *repository.Repository, logger *zap.Logger) AccountService {
	return &accountService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *accountService) List(ctx context.Context, req *dto.AccountListRequest, actor Identity) ([]dto.AccountResponse, int64, error) {
	if !access.Can(actor.Role, access.OpAccountApprove) {
		return nil, 0, ErrAccountForbidden
	}

	filters := &repository.AccountListFilters{
		Status:  model.AccountStatus(req.Status),
		Keyword: req.Keyword,
	}

	accounts, total, err := s.repo.Account.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list accounts failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		result = append(result, toAccountResponse(&accounts[i]))
	}
	return result, total, nil
}

// ────────────────────── Approve ──────────────────────

func (s *accountService) Approve(ctx context.Context, id string, actor Identity) error {
	if !access.Can(actor.Role, access.OpAccountApprove) {
		return ErrAccountForbidden
	}

	account, err := s.repo.Account.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		s.logger.Error("account lookup failed", zap.String("id", id), zap.Error(err))
		return err
	}

	// Idempotent: approving an already-active account succeeds.
	if account.Status == model.AccountActive {
		return nil
	}

	account.Status = model.AccountActive
	if err := s.repo.Account.Update(ctx, account); err != nil {
		s.logger.Error("approve account failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Update ──────────────────────

func (s *accountService) Update(ctx context.Context, id string, req *dto.UpdateAccountRequest, actor Identity) (*dto.AccountResponse, error) {
	account, err := s.repo.Account.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("account lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	isAdmin := access.Can(actor.Role, access.OpAccountAssignRole)
	isSelf := actor.AccountID == id
	if !isAdmin && !isSelf {
		return nil, ErrAccountForbidden
	}

	if req.Role != nil {
		// Role changes are admin-only, and an admin cannot demote
		// themselves by accident.
		if !isAdmin {
			return nil, ErrAccountForbidden
		}
		if isSelf {
			return nil, ErrAccountSelfOp
		}
		account.Role = *req.Role
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Department != nil {
		account.Department = *req.Department
	}

	if err := s.repo.Account.Update(ctx, account); err != nil {
		s.logger.Error("update account failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toAccountResponse(account)
	return &resp, nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *accountService) ResetPassword(ctx context.Context, id string, actor Identity) (*dto.ResetPasswordResponse, error) {
	if !access.Can(actor.Role, access.OpAccountReset) {
		return nil, ErrAccountForbidden
	}

	account, err := s.repo.Account.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("account lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("generate temp password failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return nil, err
	}

	account.PasswordHash = string(hash)
	account.ResetRequests = 0 // the outstanding request is fulfilled
	if err := s.repo.Account.Update(ctx, account); err != nil {
		s.logger.Error("reset password failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.ResetPasswordResponse{TempPassword: tempPassword}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *accountService) Delete(ctx context.Context, id string, actor Identity) error {
	if !access.Can(actor.Role, access.OpAccountDelete) {
		return ErrAccountForbidden
	}
	if actor.AccountID == id {
		return ErrAccountSelfOp
	}

	if _, err := s.repo.Account.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		s.logger.Error("account lookup failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Account.Delete(ctx, id); err != nil {
		s.logger.Error("delete account failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ListActiveHosts ──────────────────────

func (s *accountService) ListActiveHosts(ctx context.Context) ([]dto.HostResponse, error) {
	accounts, err := s.repo.Account.ListActive(ctx)
	if err != nil {
		s.logger.Error("list active accounts failed", zap.Error(err))
		return nil, err
	}

	hosts := make([]dto.HostResponse, 0, len(accounts))
	for _, a := range accounts {
		hosts = append(hosts, dto.HostResponse{
			ID:         a.AccountID,
			Email:      a.Email,
			Name:       a.Name,
			Department: a.Department,
		})
	}
	return hosts, nil
}

// generateTempPassword returns a random password guaranteed to mix
// letters and digits. Ambiguous glyphs (0/O, 1/l) are excluded.
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 4 {
		length = 8
	}

	result := make([]byte, length)

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
	if err != nil {
		return "", err
	}
	result[0] = letters[n.Int64()]

	n, err = rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
	if err != nil {
		return "", err
	}
	result[1] = digits[n.Int64()]

	for i := 2; i < length; i++ {
		n, err = rand.Int(rand.Reader, big.NewInt(int64(len(all))))
		if err != nil {
			return "", err
		}
		result[i] = all[n.Int64()]
	}

	// Fisher-Yates shuffle so the guaranteed characters are not
	// predictable by position.
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}
