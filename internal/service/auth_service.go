package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"weekboard/config"
	"weekboard/internal/access"
	"weekboard/internal/dto"
	"weekboard/internal/model"
	"weekboard/internal/repository"
	"weekboard/pkg/apperr"
	"weekboard/pkg/jwt"
	"weekboard/pkg/redis"
)

var (
	ErrInvalidCredentials = apperr.New(apperr.KindAuthentication, "invalid email or password")
	ErrAccountPending     = apperr.New(apperr.KindAuthentication, "account is awaiting approval")
	ErrAccountNotFound    = apperr.New(apperr.KindNotFound, "account not found")
	ErrEmailExists        = apperr.New(apperr.KindConflict, "email is already registered")
	ErrRefreshInvalid     = apperr.New(apperr.KindAuthentication, "refresh token invalid or revoked")
	ErrWrongPassword      = apperr.New(apperr.KindValidation, "current password is incorrect")
)

// AuthService owns authentication and self-service account operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentAccount(ctx context.Context, accountID string) (*dto.AccountResponse, error)
	ChangePassword(ctx context.Context, accountID string, req *dto.ChangePasswordRequest) error
	RequestPasswordReset(ctx context.Context, accountID string) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates the AuthService. rdb may be nil; token
// revocation then degrades to expiry-only.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// ────────────────────── Register ──────────────────────

// Register self-registers an account. The result is always pending
// with role=user; only an existing admin can assign anything higher.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error) {
	if _, err := s.repo.Account.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("email lookup failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return nil, err
	}

	account := &model.Account{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         string(access.RoleUser),
		Status:       model.AccountPending,
		Department:   req.Department,
	}

	if err := s.repo.Account.Create(ctx, account); err != nil {
		s.logger.Error("create account failed", zap.Error(err))
		return nil, err
	}

	resp := toAccountResponse(account)
	return &resp, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	account, err := s.repo.Account.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("account lookup failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// A pending account holds a valid credential but cannot
	// authenticate until approved.
	if account.Status != model.AccountActive {
		return nil, ErrAccountPending
	}

	return s.issueTokens(account, req.RememberMe)
}

// ────────────────────── RefreshToken ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrRefreshInvalid
	}

	if s.rdb != nil {
		revoked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed, accepting token", zap.Error(err))
		} else if revoked {
			return nil, ErrRefreshInvalid
		}
	}

	// Reload the account so role or status changes take effect at
	// refresh time.
	account, err := s.repo.Account.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshInvalid
		}
		s.logger.Error("account lookup failed", zap.Error(err))
		return nil, err
	}
	if account.Status != model.AccountActive {
		return nil, ErrAccountPending
	}

	// Rotate: revoke the presented refresh token for its remaining
	// lifetime.
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("refresh token revocation failed", zap.Error(err))
		}
	}

	return s.issueTokens(account, claims.RememberMe)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("token blacklist failed", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── GetCurrentAccount ──────────────────────

func (s *authService) GetCurrentAccount(ctx context.Context, accountID string) (*dto.AccountResponse, error) {
	account, err := s.repo.Account.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("account lookup failed", zap.String("id", accountID), zap.Error(err))
		return nil, err
	}
	resp := toAccountResponse(account)
	return &resp, nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, accountID string, req *dto.ChangePasswordRequest) error {
	account, err := s.repo.Account.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		s.logger.Error("account lookup failed", zap.String("id", accountID), zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return err
	}

	account.PasswordHash = string(hash)
	if err := s.repo.Account.Update(ctx, account); err != nil {
		s.logger.Error("update password failed", zap.String("id", accountID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── RequestPasswordReset ──────────────────────

// RequestPasswordReset increments the outstanding-reset counter; a
// manager fulfills the request and clears it via AccountService.
func (s *authService) RequestPasswordReset(ctx context.Context, accountID string) error {
	account, err := s.repo.Account.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		s.logger.Error("account lookup failed", zap.String("id", accountID), zap.Error(err))
		return err
	}

	account.ResetRequests++
	if err := s.repo.Account.Update(ctx, account); err != nil {
		s.logger.Error("record reset request failed", zap.String("id", accountID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── helpers ──────────────────────

func (s *authService) issueTokens(account *model.Account, rememberMe bool) (*dto.TokenResponse, error) {
	id := jwt.Identity{
		AccountID:  account.AccountID,
		Email:      account.Email,
		Name:       account.Name,
		Role:       account.Role,
		Department: account.Department,
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(id)
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(id, rememberMe)
	if err != nil {
		s.logger.Error("generate refresh token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Account:      toAccountResponse(account),
	}, nil
}

func toAccountResponse(a *model.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:            a.AccountID,
		Email:         a.Email,
		Name:          a.Name,
		Role:          a.Role,
		Status:        string(a.Status),
		Department:    a.Department,
		ResetRequests: a.ResetRequests,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}
