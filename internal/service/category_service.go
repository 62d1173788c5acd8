package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/repository"
)

// Category validation failures reported to callers.
var (
	ErrCategoryInUse     = errors.New("category is assigned to members")
	ErrNormNotPositive   = errors.New("weekly hour norm must be positive")
	ErrCategoryNameTaken = errors.New("category name already exists")
)

// CategoryService exposes teaching category administration.
type CategoryService interface {
	Create(ctx context.Context, req dto.CategoryCreateRequest) (dto.CategoryResponse, error)
	Get(ctx context.Context, id uint) (dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uint, req dto.CategoryUpdateRequest) (dto.CategoryResponse, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo      repository.CategoryRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCategoryService constructs the category service.
func NewCategoryService(repo repository.CategoryRepository, validate *validator.Validate, logger zerolog.Logger) CategoryService {
	return &categoryService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "category_service").Logger(),
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CategoryCreateRequest) (dto.CategoryResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CategoryResponse{}, err
	}
	if !req.WeeklyHourNorm.IsPositive() {
		return dto.CategoryResponse{}, ErrNormNotPositive
	}

	category := models.Category{
		Name:           strings.TrimSpace(req.Name),
		WeeklyHourNorm: req.WeeklyHourNorm,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.CategoryResponse{}, ErrCategoryNameTaken
		}
		return dto.CategoryResponse{}, err
	}

	return dto.NewCategoryResponse(category), nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (dto.CategoryResponse, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.CategoryResponse{}, err
	}

	return dto.NewCategoryResponse(category), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewCategoryResponseSlice(categories), nil
}

func (s *categoryService) Update(ctx context.Context, id uint, req dto.CategoryUpdateRequest) (dto.CategoryResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CategoryResponse{}, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.WeeklyHourNorm != nil {
		if !req.WeeklyHourNorm.IsPositive() {
			return dto.CategoryResponse{}, ErrNormNotPositive
		}
		updates["weekly_hour_norm"] = *req.WeeklyHourNorm
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	category, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.CategoryResponse{}, ErrCategoryNameTaken
		}
		return dto.CategoryResponse{}, err
	}

	return dto.NewCategoryResponse(category), nil
}

// Delete refuses to remove a category that members still reference.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	used, err := s.repo.CountMembers(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return ErrCategoryInUse
	}

	return s.repo.Delete(ctx, id)
}
