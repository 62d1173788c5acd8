package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/repository"
)

// MemberService exposes member administration operations.
type MemberService interface {
	List(ctx context.Context, query dto.MemberListQuery) ([]dto.MemberResponse, dto.PaginationMeta, error)
	Get(ctx context.Context, id uint) (dto.MemberResponse, error)
	Update(ctx context.Context, id uint, req dto.MemberUpdateRequest) (dto.MemberResponse, error)
	Approve(ctx context.Context, id uint, actorID uint, actorRole string) (dto.MemberResponse, error)
	AssignCategory(ctx context.Context, id uint, req dto.AssignCategoryRequest, actorID uint, actorRole string) (dto.MemberResponse, error)
	Delete(ctx context.Context, id uint) error
}

type memberService struct {
	members       repository.MemberRepository
	categories    repository.CategoryRepository
	audit         repository.AuditLogRepository
	notifications NotificationService
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewMemberService constructs the member service.
func NewMemberService(members repository.MemberRepository, categories repository.CategoryRepository, audit repository.AuditLogRepository, notifications NotificationService, validate *validator.Validate, logger zerolog.Logger) MemberService {
	return &memberService{
		members:       members,
		categories:    categories,
		audit:         audit,
		notifications: notifications,
		validator:     validate,
		logger:        logger.With().Str("component", "member_service").Logger(),
	}
}

func (s *memberService) List(ctx context.Context, query dto.MemberListQuery) ([]dto.MemberResponse, dto.PaginationMeta, error) {
	page := maxInt(query.Page, 1)
	pageSize := clampPageSize(query.PageSize)

	filter := repository.MemberFilter{
		Search:       query.Search,
		RoleID:       query.RoleID,
		DepartmentID: query.DepartmentID,
		CategoryID:   query.CategoryID,
		Approved:     query.Approved,
		Page:         page,
		PageSize:     pageSize,
	}

	members, total, err := s.members.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewMemberResponseSlice(members), newPagination(page, pageSize, total), nil
}

func (s *memberService) Get(ctx context.Context, id uint) (dto.MemberResponse, error) {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return dto.MemberResponse{}, err
	}

	return dto.NewMemberResponse(member), nil
}

func (s *memberService) Update(ctx context.Context, id uint, req dto.MemberUpdateRequest) (dto.MemberResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MemberResponse{}, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Surname != nil {
		updates["surname"] = strings.TrimSpace(*req.Surname)
	}
	if req.DepartmentID != nil {
		updates["department_id"] = *req.DepartmentID
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	member, err := s.members.Update(ctx, id, updates)
	if err != nil {
		return dto.MemberResponse{}, err
	}

	return dto.NewMemberResponse(member), nil
}

// Approve activates an account so it can authenticate and appear in reports.
// The member is notified and the decision is audited.
func (s *memberService) Approve(ctx context.Context, id uint, actorID uint, actorRole string) (dto.MemberResponse, error) {
	member, err := s.members.Update(ctx, id, map[string]interface{}{"approved": true})
	if err != nil {
		return dto.MemberResponse{}, err
	}

	s.recordAudit(ctx, actorID, actorRole, "member.approve", member.ID, nil)
	s.notify(ctx, member.ID, "account", "Your account has been approved. You can now sign in.")

	return dto.NewMemberResponse(member), nil
}

// AssignCategory moves a member to a teaching category directly, bypassing
// the change-request flow. Admin only.
func (s *memberService) AssignCategory(ctx context.Context, id uint, req dto.AssignCategoryRequest, actorID uint, actorRole string) (dto.MemberResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MemberResponse{}, err
	}

	category, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		return dto.MemberResponse{}, err
	}

	member, err := s.members.Update(ctx, id, map[string]interface{}{"category_id": category.ID})
	if err != nil {
		return dto.MemberResponse{}, err
	}

	s.recordAudit(ctx, actorID, actorRole, "member.assign_category", member.ID, datatypes.JSONMap{
		"category_id":   category.ID,
		"category_name": category.Name,
	})
	s.notify(ctx, member.ID, "category", fmt.Sprintf("You have been assigned to the %s category.", category.Name))

	return dto.NewMemberResponse(member), nil
}

func (s *memberService) Delete(ctx context.Context, id uint) error {
	return s.members.Delete(ctx, id)
}

func (s *memberService) recordAudit(ctx context.Context, actorID uint, actorRole, action string, entityID uint, metadata datatypes.JSONMap) {
	entry := models.AuditLog{
		ActorID:    actorID,
		ActorRole:  actorRole,
		Action:     action,
		EntityType: "member",
		EntityID:   &entityID,
		Metadata:   metadata,
	}
	if err := s.audit.Create(ctx, &entry); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record audit entry")
	}
}

func (s *memberService) notify(ctx context.Context, memberID uint, kind, message string) {
	if s.notifications == nil {
		return
	}
	if _, err := s.notifications.Publish(ctx, dto.NotificationCreateRequest{
		MemberID: memberID,
		Type:     kind,
		Message:  message,
	}); err != nil {
		s.logger.Warn().Err(err).Uint("member_id", memberID).Msg("failed to publish notification")
	}
}
