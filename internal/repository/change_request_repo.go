package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/models"
)

// ErrRequestNotPending is returned when deciding a request that has already
// been ruled on.
var ErrRequestNotPending = errors.New("change request is not pending")

// ChangeRequestFilter filters change request list queries.
type ChangeRequestFilter struct {
	MemberID *uint
	Status   string
	Page     int
	PageSize int
}

// ChangeRequestRepository exposes persistence helpers for category change
// requests. Creation with documents and decisions are transactional.
type ChangeRequestRepository interface {
	CreateWithDocuments(ctx context.Context, request *models.CategoryChangeRequest, documents []models.RequestDocument) error
	GetByID(ctx context.Context, id uint) (models.CategoryChangeRequest, error)
	List(ctx context.Context, filter ChangeRequestFilter) ([]models.CategoryChangeRequest, int64, error)
	Decide(ctx context.Context, id uint, deciderID uint, approve bool) (models.CategoryChangeRequest, error)
}

type changeRequestRepository struct {
	db *gorm.DB
}

// NewChangeRequestRepository constructs the change request repository.
func NewChangeRequestRepository(db *gorm.DB) ChangeRequestRepository {
	return &changeRequestRepository{db: db}
}

func (r *changeRequestRepository) CreateWithDocuments(ctx context.Context, request *models.CategoryChangeRequest, documents []models.RequestDocument) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return err
		}

		for i := range documents {
			documents[i].RequestID = request.ID
		}
		if len(documents) > 0 {
			if err := tx.Create(&documents).Error; err != nil {
				return err
			}
		}

		request.Documents = documents
		return nil
	})
}

func (r *changeRequestRepository) GetByID(ctx context.Context, id uint) (models.CategoryChangeRequest, error) {
	var request models.CategoryChangeRequest
	query := r.db.WithContext(ctx).
		Preload("Documents").
		Preload("RequestedCategory").
		Where("id = ?", id)
	if err := query.First(&request).Error; err != nil {
		return models.CategoryChangeRequest{}, err
	}

	return request, nil
}

func (r *changeRequestRepository) List(ctx context.Context, filter ChangeRequestFilter) ([]models.CategoryChangeRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CategoryChangeRequest{})

	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var requests []models.CategoryChangeRequest
	if err := query.Preload("Documents").Preload("RequestedCategory").Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// Decide rules on a pending request. Approval also moves the member to the
// requested category inside the same transaction.
func (r *changeRequestRepository) Decide(ctx context.Context, id uint, deciderID uint, approve bool) (models.CategoryChangeRequest, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.CategoryChangeRequest
		if err := tx.First(&request, id).Error; err != nil {
			return err
		}
		if request.Status != models.RequestStatusPending {
			return ErrRequestNotPending
		}

		status := models.RequestStatusRejected
		if approve {
			status = models.RequestStatusApproved
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":     status,
			"decided_by": deciderID,
			"decided_at": now,
		}
		if err := tx.Model(&request).Updates(updates).Error; err != nil {
			return err
		}

		if approve {
			memberUpdate := tx.Model(&models.Member{}).
				Where("id = ?", request.MemberID).
				Update("category_id", request.RequestedCategoryID)
			if memberUpdate.Error != nil {
				return memberUpdate.Error
			}
			if memberUpdate.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		return nil
	})
	if err != nil {
		return models.CategoryChangeRequest{}, err
	}

	return r.GetByID(ctx, id)
}
