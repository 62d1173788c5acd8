package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/models"
)

// MemberFilter filters member list queries.
type MemberFilter struct {
	Search       string
	RoleID       *uint
	DepartmentID *uint
	CategoryID   *uint
	Approved     *bool
	Page         int
	PageSize     int
}

// MemberRepository exposes persistence helpers for faculty members.
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (models.Member, error)
	GetByEmail(ctx context.Context, email string) (models.Member, error)
	List(ctx context.Context, filter MemberFilter) ([]models.Member, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Member, error)
	Delete(ctx context.Context, id uint) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository constructs the member repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) GetByID(ctx context.Context, id uint) (models.Member, error) {
	var member models.Member
	query := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Department").
		Preload("Category").
		Where("id = ?", id)
	if err := query.First(&member).Error; err != nil {
		return models.Member{}, err
	}

	return member, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (models.Member, error) {
	var member models.Member
	query := r.db.WithContext(ctx).
		Preload("Role").
		Where("LOWER(email) = ?", strings.ToLower(email))
	if err := query.First(&member).Error; err != nil {
		return models.Member{}, err
	}

	return member, nil
}

func (r *memberRepository) List(ctx context.Context, filter MemberFilter) ([]models.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Member{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	if filter.RoleID != nil {
		query = query.Where("role_id = ?", *filter.RoleID)
	}

	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("surname ASC, name ASC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var members []models.Member
	if err := query.
		Preload("Role").
		Preload("Department").
		Preload("Category").
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *memberRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Member, error) {
	tx := r.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", id)
	result := tx.Updates(updates)
	if result.Error != nil {
		return models.Member{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Member{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Member{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
