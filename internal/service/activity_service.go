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
	"github.com/claustro-app/claustro-api/internal/workload"
)

// Activity validation failures reported to callers.
var (
	ErrNotRecordOwner       = errors.New("activity record belongs to another member")
	ErrHoursNotPositive     = errors.New("hours must be positive")
	ErrGroupRequired        = errors.New("activity type requires a group")
	ErrStudentCountRequired = errors.New("activity type requires a student count")
	ErrTypeInUse            = errors.New("activity type is referenced by records")
	ErrTypeNameTaken        = errors.New("activity type name already exists")
)

// ActivityService manages activity types and member activity records.
type ActivityService interface {
	CreateType(ctx context.Context, req dto.ActivityTypeCreateRequest) (dto.ActivityTypeResponse, error)
	ListTypes(ctx context.Context) ([]dto.ActivityTypeResponse, error)
	UpdateType(ctx context.Context, id uint, req dto.ActivityTypeUpdateRequest) (dto.ActivityTypeResponse, error)
	DeleteType(ctx context.Context, id uint) error

	CreateRecord(ctx context.Context, memberID uint, req dto.ActivityRecordCreateRequest) (dto.ActivityRecordResponse, error)
	GetRecord(ctx context.Context, id uint, actorID uint, actorRole string) (dto.ActivityRecordResponse, error)
	ListRecords(ctx context.Context, filter repository.ActivityRecordFilter) ([]dto.ActivityRecordResponse, dto.PaginationMeta, error)
	UpdateRecord(ctx context.Context, id uint, actorID uint, actorRole string, req dto.ActivityRecordUpdateRequest) (dto.ActivityRecordResponse, error)
	DeleteRecord(ctx context.Context, id uint, actorID uint, actorRole string) error
}

type activityService struct {
	types     repository.ActivityTypeRepository
	records   repository.ActivityRecordRepository
	patterns  workload.ClassifyPatterns
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewActivityService constructs the activity service.
func NewActivityService(types repository.ActivityTypeRepository, records repository.ActivityRecordRepository, patterns workload.ClassifyPatterns, validate *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		types:     types,
		records:   records,
		patterns:  patterns,
		validator: validate,
		logger:    logger.With().Str("component", "activity_service").Logger(),
	}
}

// CreateType stores a new activity type. With AutoClassify set the capability
// flags are derived from the configured name patterns; classification happens
// only here, never at report time.
func (s *activityService) CreateType(ctx context.Context, req dto.ActivityTypeCreateRequest) (dto.ActivityTypeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ActivityTypeResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	activityType := models.ActivityType{
		Name:                 name,
		RequiresGroup:        req.RequiresGroup,
		RequiresStudentCount: req.RequiresStudentCount,
		IsDirectTeaching:     req.IsDirectTeaching,
		CountsAsPregrad:      req.CountsAsPregrad,
		CountsAsPreparation:  req.CountsAsPreparation,
	}
	if req.AutoClassify {
		flags := workload.ClassifyTypeName(name, s.patterns)
		activityType.IsDirectTeaching = flags.IsDirectTeaching
		activityType.CountsAsPregrad = flags.CountsAsPregrad
		activityType.CountsAsPreparation = flags.CountsAsPreparation
	}

	if err := s.types.Create(ctx, &activityType); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.ActivityTypeResponse{}, ErrTypeNameTaken
		}
		return dto.ActivityTypeResponse{}, err
	}

	return dto.NewActivityTypeResponse(activityType), nil
}

func (s *activityService) ListTypes(ctx context.Context) ([]dto.ActivityTypeResponse, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewActivityTypeResponseSlice(types), nil
}

func (s *activityService) UpdateType(ctx context.Context, id uint, req dto.ActivityTypeUpdateRequest) (dto.ActivityTypeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ActivityTypeResponse{}, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.RequiresGroup != nil {
		updates["requires_group"] = *req.RequiresGroup
	}
	if req.RequiresStudentCount != nil {
		updates["requires_student_count"] = *req.RequiresStudentCount
	}
	if req.IsDirectTeaching != nil {
		updates["is_direct_teaching"] = *req.IsDirectTeaching
	}
	if req.CountsAsPregrad != nil {
		updates["counts_as_pregrad"] = *req.CountsAsPregrad
	}
	if req.CountsAsPreparation != nil {
		updates["counts_as_preparation"] = *req.CountsAsPreparation
	}
	if len(updates) == 0 {
		activityType, err := s.types.GetByID(ctx, id)
		if err != nil {
			return dto.ActivityTypeResponse{}, err
		}
		return dto.NewActivityTypeResponse(activityType), nil
	}

	activityType, err := s.types.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.ActivityTypeResponse{}, ErrTypeNameTaken
		}
		return dto.ActivityTypeResponse{}, err
	}

	return dto.NewActivityTypeResponse(activityType), nil
}

func (s *activityService) DeleteType(ctx context.Context, id uint) error {
	used, err := s.types.CountRecords(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return ErrTypeInUse
	}

	return s.types.Delete(ctx, id)
}

func (s *activityService) CreateRecord(ctx context.Context, memberID uint, req dto.ActivityRecordCreateRequest) (dto.ActivityRecordResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ActivityRecordResponse{}, err
	}
	if !req.Hours.IsPositive() {
		return dto.ActivityRecordResponse{}, ErrHoursNotPositive
	}

	activityType, err := s.types.GetByID(ctx, req.ActivityTypeID)
	if err != nil {
		return dto.ActivityRecordResponse{}, err
	}
	if err := checkTypeRequirements(activityType, req.Group, req.StudentCount); err != nil {
		return dto.ActivityRecordResponse{}, err
	}

	date, err := workload.ParseDate(req.Date)
	if err != nil {
		return dto.ActivityRecordResponse{}, err
	}

	record := models.ActivityRecord{
		MemberID:       memberID,
		ActivityTypeID: activityType.ID,
		Date:           date,
		Hours:          req.Hours,
		Group:          req.Group,
		StudentCount:   req.StudentCount,
	}
	if err := s.records.Create(ctx, &record); err != nil {
		return dto.ActivityRecordResponse{}, err
	}

	record.ActivityType = activityType
	return dto.NewActivityRecordResponse(record), nil
}

func (s *activityService) GetRecord(ctx context.Context, id uint, actorID uint, actorRole string) (dto.ActivityRecordResponse, error) {
	record, err := s.loadOwned(ctx, id, actorID, actorRole)
	if err != nil {
		return dto.ActivityRecordResponse{}, err
	}

	return dto.NewActivityRecordResponse(record), nil
}

func (s *activityService) ListRecords(ctx context.Context, filter repository.ActivityRecordFilter) ([]dto.ActivityRecordResponse, dto.PaginationMeta, error) {
	page := maxInt(filter.Page, 1)
	pageSize := clampPageSize(filter.PageSize)
	filter.Page = page
	filter.PageSize = pageSize

	records, total, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewActivityRecordResponseSlice(records), newPagination(page, pageSize, total), nil
}

func (s *activityService) UpdateRecord(ctx context.Context, id uint, actorID uint, actorRole string, req dto.ActivityRecordUpdateRequest) (dto.ActivityRecordResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ActivityRecordResponse{}, err
	}

	record, err := s.loadOwned(ctx, id, actorID, actorRole)
	if err != nil {
		return dto.ActivityRecordResponse{}, err
	}

	activityType := record.ActivityType
	updates := map[string]interface{}{}

	if req.ActivityTypeID != nil && *req.ActivityTypeID != record.ActivityTypeID {
		activityType, err = s.types.GetByID(ctx, *req.ActivityTypeID)
		if err != nil {
			return dto.ActivityRecordResponse{}, err
		}
		updates["activity_type_id"] = activityType.ID
	}

	if req.Date != nil {
		date, err := workload.ParseDate(*req.Date)
		if err != nil {
			return dto.ActivityRecordResponse{}, err
		}
		updates["date"] = date
	}

	if req.Hours != nil {
		if !req.Hours.IsPositive() {
			return dto.ActivityRecordResponse{}, ErrHoursNotPositive
		}
		updates["hours"] = *req.Hours
	}

	group := record.Group
	if req.Group != nil {
		group = req.Group
		updates["group"] = *req.Group
	}
	studentCount := record.StudentCount
	if req.StudentCount != nil {
		studentCount = req.StudentCount
		updates["student_count"] = *req.StudentCount
	}

	if err := checkTypeRequirements(activityType, group, studentCount); err != nil {
		return dto.ActivityRecordResponse{}, err
	}

	if len(updates) == 0 {
		return dto.NewActivityRecordResponse(record), nil
	}

	updated, err := s.records.Update(ctx, id, updates)
	if err != nil {
		return dto.ActivityRecordResponse{}, err
	}

	return dto.NewActivityRecordResponse(updated), nil
}

func (s *activityService) DeleteRecord(ctx context.Context, id uint, actorID uint, actorRole string) error {
	if _, err := s.loadOwned(ctx, id, actorID, actorRole); err != nil {
		return err
	}

	return s.records.Delete(ctx, id)
}

// loadOwned fetches a record and enforces owner-or-admin access.
func (s *activityService) loadOwned(ctx context.Context, id uint, actorID uint, actorRole string) (models.ActivityRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return models.ActivityRecord{}, err
	}
	if record.MemberID != actorID && actorRole != models.RoleAdmin {
		return models.ActivityRecord{}, ErrNotRecordOwner
	}

	return record, nil
}

func checkTypeRequirements(activityType models.ActivityType, group *string, studentCount *int) error {
	if activityType.RequiresGroup && (group == nil || strings.TrimSpace(*group) == "") {
		return ErrGroupRequired
	}
	if activityType.RequiresStudentCount && (studentCount == nil || *studentCount <= 0) {
		return ErrStudentCountRequired
	}
	return nil
}
