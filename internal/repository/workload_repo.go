package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/workload"
)

// ReportFilter narrows the member population fed into the workload engine.
type ReportFilter struct {
	RoleID       *uint
	DepartmentID *uint
	CategoryID   *uint
}

// WorkloadRepository loads the flat rows the workload engine computes over.
type WorkloadRepository interface {
	MembersWithCategory(ctx context.Context, filter ReportFilter) ([]workload.MemberRow, error)
	ActivityRows(ctx context.Context, memberIDs []uint, start, end time.Time) ([]workload.ActivityRow, error)
}

type workloadRepository struct {
	db *gorm.DB
}

// NewWorkloadRepository constructs the workload repository.
func NewWorkloadRepository(db *gorm.DB) WorkloadRepository {
	return &workloadRepository{db: db}
}

// MembersWithCategory returns approved members joined with their category
// norm. Members without a category are excluded here instead of in the
// engine so report queries stay cheap.
func (r *workloadRepository) MembersWithCategory(ctx context.Context, filter ReportFilter) ([]workload.MemberRow, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Select("members.id, members.name, members.surname, members.role_id, members.department_id, members.category_id, categories.name AS category, categories.weekly_hour_norm AS weekly_norm").
		Joins("JOIN categories ON categories.id = members.category_id").
		Where("members.approved = ?", true)

	if filter.RoleID != nil {
		query = query.Where("members.role_id = ?", *filter.RoleID)
	}

	if filter.DepartmentID != nil {
		query = query.Where("members.department_id = ?", *filter.DepartmentID)
	}

	if filter.CategoryID != nil {
		query = query.Where("members.category_id = ?", *filter.CategoryID)
	}

	var rows []workload.MemberRow
	if err := query.Order("members.surname ASC, members.name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// ActivityRows returns activity entries for the given members within the
// inclusive date range, joined with the type capability flags.
func (r *workloadRepository) ActivityRows(ctx context.Context, memberIDs []uint, start, end time.Time) ([]workload.ActivityRow, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).
		Model(&models.ActivityRecord{}).
		Select("activity_records.member_id, activity_records.activity_type_id AS type_id, activity_types.name AS type_name, activity_records.date, activity_records.hours, activity_types.is_direct_teaching AS direct_teaching, activity_types.counts_as_pregrad AS pregrad, activity_types.counts_as_preparation AS preparation").
		Joins("JOIN activity_types ON activity_types.id = activity_records.activity_type_id").
		Where("activity_records.member_id IN ?", memberIDs).
		Where("activity_records.date >= ? AND activity_records.date <= ?", start, end)

	var rows []workload.ActivityRow
	if err := query.Order("activity_records.date ASC, activity_records.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
