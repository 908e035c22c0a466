package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"weekboard/internal/dto"
	"weekboard/internal/model"
	"weekboard/internal/repository"
	"weekboard/pkg/apperr"
)

var (
	ErrDepartmentNotFound   = apperr.New(apperr.KindNotFound, "department not found")
	ErrDepartmentNameExists = apperr.New(apperr.KindConflict, "department name already exists")
	ErrDepartmentReferenced = apperr.New(apperr.KindConflict, "department is referenced by schedule entries")
)

// DepartmentService owns departments. Entries reference departments by
// name, so a rename never touches existing entries.
type DepartmentService interface {
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService creates the DepartmentService.
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		result = append(result, dto.DepartmentResponse{ID: d.DepartmentID, Name: d.Name})
	}
	return result, nil
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if _, err := s.repo.Department.GetByName(ctx, req.Name); err == nil {
		return nil, ErrDepartmentNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("department lookup failed", zap.Error(err))
		return nil, err
	}

	dept := &model.Department{Name: req.Name}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("create department failed", zap.Error(err))
		return nil, err
	}

	return &dto.DepartmentResponse{ID: dept.DepartmentID, Name: dept.Name}, nil
}

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("department lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if existing, err := s.repo.Department.GetByName(ctx, req.Name); err == nil && existing.DepartmentID != id {
		return nil, ErrDepartmentNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("department lookup failed", zap.Error(err))
		return nil, err
	}

	dept.Name = req.Name
	if err := s.repo.Department.Update(ctx, dept); err != nil {
		s.logger.Error("rename department failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.DepartmentResponse{ID: dept.DepartmentID, Name: dept.Name}, nil
}

func (s *departmentService) Delete(ctx context.Context, id string) error {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("department lookup failed", zap.String("id", id), zap.Error(err))
		return err
	}

	referenced, err := s.repo.Schedule.ExistsByDepartment(ctx, dept.Name)
	if err != nil {
		s.logger.Error("department reference check failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if referenced {
		return ErrDepartmentReferenced
	}

	if err := s.repo.Department.Delete(ctx, id); err != nil {
		s.logger.Error("delete department failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
