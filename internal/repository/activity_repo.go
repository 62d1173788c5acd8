package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/models"
)

// ActivityTypeRepository exposes persistence helpers for activity types.
type ActivityTypeRepository interface {
	Create(ctx context.Context, activityType *models.ActivityType) error
	GetByID(ctx context.Context, id uint) (models.ActivityType, error)
	List(ctx context.Context) ([]models.ActivityType, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.ActivityType, error)
	Delete(ctx context.Context, id uint) error
	CountRecords(ctx context.Context, id uint) (int64, error)
}

type activityTypeRepository struct {
	db *gorm.DB
}

// NewActivityTypeRepository constructs the activity type repository.
func NewActivityTypeRepository(db *gorm.DB) ActivityTypeRepository {
	return &activityTypeRepository{db: db}
}

func (r *activityTypeRepository) Create(ctx context.Context, activityType *models.ActivityType) error {
	return r.db.WithContext(ctx).Create(activityType).Error
}

func (r *activityTypeRepository) GetByID(ctx context.Context, id uint) (models.ActivityType, error) {
	var activityType models.ActivityType
	if err := r.db.WithContext(ctx).First(&activityType, id).Error; err != nil {
		return models.ActivityType{}, err
	}

	return activityType, nil
}

func (r *activityTypeRepository) List(ctx context.Context) ([]models.ActivityType, error) {
	var types []models.ActivityType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}

	return types, nil
}

func (r *activityTypeRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.ActivityType, error) {
	result := r.db.WithContext(ctx).Model(&models.ActivityType{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.ActivityType{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ActivityType{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *activityTypeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ActivityType{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *activityTypeRepository) CountRecords(ctx context.Context, id uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ActivityRecord{}).Where("activity_type_id = ?", id).Count(&total).Error
	return total, err
}

// ActivityRecordFilter filters activity record list queries. From and To are
// inclusive date bounds.
type ActivityRecordFilter struct {
	MemberID       *uint
	ActivityTypeID *uint
	From           *time.Time
	To             *time.Time
	Page           int
	PageSize       int
}

// ActivityRecordRepository exposes persistence helpers for activity records.
type ActivityRecordRepository interface {
	Create(ctx context.Context, record *models.ActivityRecord) error
	GetByID(ctx context.Context, id uint) (models.ActivityRecord, error)
	List(ctx context.Context, filter ActivityRecordFilter) ([]models.ActivityRecord, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.ActivityRecord, error)
	Delete(ctx context.Context, id uint) error
}

type activityRecordRepository struct {
	db *gorm.DB
}

// NewActivityRecordRepository constructs the activity record repository.
func NewActivityRecordRepository(db *gorm.DB) ActivityRecordRepository {
	return &activityRecordRepository{db: db}
}

func (r *activityRecordRepository) Create(ctx context.Context, record *models.ActivityRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *activityRecordRepository) GetByID(ctx context.Context, id uint) (models.ActivityRecord, error) {
	var record models.ActivityRecord
	query := r.db.WithContext(ctx).Preload("ActivityType").Where("id = ?", id)
	if err := query.First(&record).Error; err != nil {
		return models.ActivityRecord{}, err
	}

	return record, nil
}

func (r *activityRecordRepository) List(ctx context.Context, filter ActivityRecordFilter) ([]models.ActivityRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityRecord{})

	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}

	if filter.ActivityTypeID != nil {
		query = query.Where("activity_type_id = ?", *filter.ActivityTypeID)
	}

	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}

	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date DESC, id DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var records []models.ActivityRecord
	if err := query.Preload("ActivityType").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *activityRecordRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.ActivityRecord, error) {
	result := r.db.WithContext(ctx).Model(&models.ActivityRecord{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.ActivityRecord{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ActivityRecord{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *activityRecordRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ActivityRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
