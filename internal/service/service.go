package service

import (
	"go.uber.org/zap"

	"weekboard/config"
	"weekboard/internal/access"
	"weekboard/internal/repository"
	"weekboard/pkg/jwt"
	"weekboard/pkg/redis"
)

// Identity is the authenticated caller threaded into every service
// operation. It is built from verified token claims at the API
// boundary, never read from ambient state.
type Identity struct {
	AccountID  string
	Email      string
	Name       string
	Role       access.Role
	Department string
}

// Service aggregates all business services.
type Service struct {
	Auth       AuthService
	Account    AccountService
	Schedule   ScheduleService
	Area       AreaService
	Department DepartmentService
	Import     ImportService
	Export     ExportService
}

// NewService wires the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	schedule := NewScheduleService(repo, logger)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Account:    NewAccountService(repo, logger),
		Schedule:   schedule,
		Area:       NewAreaService(repo, logger),
		Department: NewDepartmentService(repo, logger),
		Import:     NewImportService(cfg, schedule, repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
