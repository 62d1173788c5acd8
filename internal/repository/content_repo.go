package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/models"
)

// ContentFilter paginates portal content listings.
type ContentFilter struct {
	Page     int
	PageSize int
}

// NewsRepository exposes persistence helpers for news items.
type NewsRepository interface {
	Create(ctx context.Context, item *models.News) error
	GetByID(ctx context.Context, id uint) (models.News, error)
	List(ctx context.Context, filter ContentFilter) ([]models.News, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.News, error)
	Delete(ctx context.Context, id uint) error
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository constructs the news repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, item *models.News) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (models.News, error) {
	var item models.News
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return models.News{}, err
	}

	return item, nil
}

func (r *newsRepository) List(ctx context.Context, filter ContentFilter) ([]models.News, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.News{})

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("is_pinned DESC, published_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var items []models.News
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *newsRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.News, error) {
	result := r.db.WithContext(ctx).Model(&models.News{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.News{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.News{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// EventRepository exposes persistence helpers for events.
type EventRepository interface {
	Create(ctx context.Context, item *models.Event) error
	GetByID(ctx context.Context, id uint) (models.Event, error)
	ListUpcoming(ctx context.Context, from time.Time, filter ContentFilter) ([]models.Event, int64, error)
	Delete(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository constructs the event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, item *models.Event) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (models.Event, error) {
	var item models.Event
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return models.Event{}, err
	}

	return item, nil
}

// ListUpcoming returns events that have not finished yet, soonest first.
func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time, filter ContentFilter) ([]models.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("starts_at >= ? OR (ends_at IS NOT NULL AND ends_at >= ?)", from, from)

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("starts_at ASC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var items []models.Event
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// CallRepository exposes persistence helpers for calls.
type CallRepository interface {
	Create(ctx context.Context, item *models.Call) error
	GetByID(ctx context.Context, id uint) (models.Call, error)
	ListOpen(ctx context.Context, now time.Time, filter ContentFilter) ([]models.Call, int64, error)
	Delete(ctx context.Context, id uint) error
}

type callRepository struct {
	db *gorm.DB
}

// NewCallRepository constructs the call repository.
func NewCallRepository(db *gorm.DB) CallRepository {
	return &callRepository{db: db}
}

func (r *callRepository) Create(ctx context.Context, item *models.Call) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *callRepository) GetByID(ctx context.Context, id uint) (models.Call, error) {
	var item models.Call
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return models.Call{}, err
	}

	return item, nil
}

// ListOpen returns calls whose deadline has not passed, closest deadline
// first.
func (r *callRepository) ListOpen(ctx context.Context, now time.Time, filter ContentFilter) ([]models.Call, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Call{}).Where("deadline >= ?", now)

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("deadline ASC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var items []models.Call
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *callRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Call{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
