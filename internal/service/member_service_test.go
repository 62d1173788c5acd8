package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
)

func TestMemberServiceApproveNotifiesAndAudits(t *testing.T) {
	members := newMemberRepoStub()
	member := models.Member{Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", PasswordHash: "x", RoleID: 2}
	require.NoError(t, members.Create(context.Background(), &member))

	audit := &auditRepoStub{}
	notificationRepo := newNotificationRepoStub()
	notifications := NewNotificationService(notificationRepo, nil, "", nil, testValidator(), testLogger())
	categories := &categoryRepoStub{categories: map[uint]models.Category{
		1: {ID: 1, Name: "Titular", WeeklyHourNorm: decimal.RequireFromString("67.9")},
	}}

	svc := NewMemberService(members, categories, audit, notifications, testValidator(), testLogger())

	approved, err := svc.Approve(context.Background(), member.ID, 99, models.RoleAdmin)
	require.NoError(t, err)
	require.True(t, approved.Approved)

	require.Len(t, audit.entries, 1)
	require.Equal(t, "member.approve", audit.entries[0].Action)

	inbox, err := notificationRepo.ListByMember(context.Background(), member.ID, false, 50, 0)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.Equal(t, "account", inbox[0].Type)
}

func TestMemberServiceAssignCategory(t *testing.T) {
	members := newMemberRepoStub()
	member := models.Member{Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", PasswordHash: "x", RoleID: 2}
	require.NoError(t, members.Create(context.Background(), &member))

	audit := &auditRepoStub{}
	categories := &categoryRepoStub{categories: map[uint]models.Category{
		1: {ID: 1, Name: "Titular", WeeklyHourNorm: decimal.RequireFromString("67.9")},
	}}

	svc := NewMemberService(members, categories, audit, nil, testValidator(), testLogger())

	updated, err := svc.AssignCategory(context.Background(), member.ID, dto.AssignCategoryRequest{CategoryID: 1}, 99, models.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, updated.CategoryID)
	require.Equal(t, uint(1), *updated.CategoryID)

	require.Len(t, audit.entries, 1)
	require.Equal(t, "member.assign_category", audit.entries[0].Action)
	require.Equal(t, "Titular", audit.entries[0].Metadata["category_name"])

	_, err = svc.AssignCategory(context.Background(), member.ID, dto.AssignCategoryRequest{CategoryID: 42}, 99, models.RoleAdmin)
	require.Error(t, err, "unknown category rejected")
}

func TestCategoryServiceDeleteGuard(t *testing.T) {
	categories := &categoryRepoStub{categories: map[uint]models.Category{
		1: {ID: 1, Name: "Titular", WeeklyHourNorm: decimal.RequireFromString("67.9")},
	}}

	svc := NewCategoryService(&countingCategoryRepo{categoryRepoStub: categories, members: 2}, testValidator(), testLogger())
	require.ErrorIs(t, svc.Delete(context.Background(), 1), ErrCategoryInUse)

	svc = NewCategoryService(&countingCategoryRepo{categoryRepoStub: categories, members: 0}, testValidator(), testLogger())
	require.NoError(t, svc.Delete(context.Background(), 1))
}

func TestCategoryServiceRejectsNonPositiveNorm(t *testing.T) {
	categories := &categoryRepoStub{categories: map[uint]models.Category{}}
	svc := NewCategoryService(categories, testValidator(), testLogger())

	_, err := svc.Create(context.Background(), dto.CategoryCreateRequest{
		Name:           "Instructor",
		WeeklyHourNorm: decimal.Zero,
	})
	require.ErrorIs(t, err, ErrNormNotPositive)
}

type countingCategoryRepo struct {
	*categoryRepoStub
	members int64
}

func (s *countingCategoryRepo) CountMembers(ctx context.Context, id uint) (int64, error) {
	return s.members, nil
}
