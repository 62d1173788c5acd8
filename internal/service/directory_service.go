package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/repository"
)

// DirectoryService manages the small lookup tables: roles and departments.
type DirectoryService interface {
	ListRoles(ctx context.Context) ([]dto.RoleResponse, error)
	CreateDepartment(ctx context.Context, req dto.DepartmentCreateRequest) (dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, id uint, req dto.DepartmentUpdateRequest) (dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id uint) error
}

type directoryService struct {
	roles       repository.RoleRepository
	departments repository.DepartmentRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(roles repository.RoleRepository, departments repository.DepartmentRepository, validate *validator.Validate, logger zerolog.Logger) DirectoryService {
	return &directoryService{
		roles:       roles,
		departments: departments,
		validate:    validate,
		logger:      logger.With().Str("component", "directory_service").Logger(),
	}
}

func (s *directoryService) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewRoleResponseSlice(roles), nil
}

func (s *directoryService) CreateDepartment(ctx context.Context, req dto.DepartmentCreateRequest) (dto.DepartmentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.DepartmentResponse{}, err
	}

	department := models.Department{Name: req.Name}
	if err := s.departments.Create(ctx, &department); err != nil {
		return dto.DepartmentResponse{}, err
	}

	s.logger.Info().Uint("department_id", department.ID).Str("name", department.Name).Msg("department created")
	return dto.NewDepartmentResponse(department), nil
}

func (s *directoryService) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewDepartmentResponseSlice(departments), nil
}

func (s *directoryService) UpdateDepartment(ctx context.Context, id uint, req dto.DepartmentUpdateRequest) (dto.DepartmentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.DepartmentResponse{}, err
	}

	department, err := s.departments.Update(ctx, id, map[string]interface{}{"name": req.Name})
	if err != nil {
		return dto.DepartmentResponse{}, err
	}

	return dto.NewDepartmentResponse(department), nil
}

func (s *directoryService) DeleteDepartment(ctx context.Context, id uint) error {
	return s.departments.Delete(ctx, id)
}
