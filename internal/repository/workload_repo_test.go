package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/claustro-app/claustro-api/internal/models"
)

func TestWorkloadRepositoryMembersWithCategory(t *testing.T) {
	db := setupTestDB(t, &models.Role{}, &models.Department{}, &models.Category{}, &models.Member{})
	repo := NewWorkloadRepository(db)

	role := seedRole(t, db, models.RoleMember)
	titular := seedCategory(t, db, "Titular", "67.9")

	department := models.Department{Name: "Mathematics"}
	require.NoError(t, db.Create(&department).Error)

	inScope := models.Member{Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", PasswordHash: "x", RoleID: role.ID, DepartmentID: &department.ID, CategoryID: &titular.ID, Approved: true}
	noCategory := models.Member{Name: "Bruno", Surname: "Acosta", Email: "bruno@uni.edu", PasswordHash: "x", RoleID: role.ID, Approved: true}
	unapproved := models.Member{Name: "Carla", Surname: "Díaz", Email: "carla@uni.edu", PasswordHash: "x", RoleID: role.ID, CategoryID: &titular.ID}
	require.NoError(t, db.Create(&inScope).Error)
	require.NoError(t, db.Create(&noCategory).Error)
	require.NoError(t, db.Create(&unapproved).Error)

	rows, err := repo.MembersWithCategory(context.Background(), ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1, "only approved members with a category")
	require.Equal(t, inScope.ID, rows[0].ID)
	require.Equal(t, "Titular", rows[0].Category)
	require.True(t, rows[0].WeeklyNorm.Equal(decimal.RequireFromString("67.9")))

	other := uint(department.ID + 1)
	empty, err := repo.MembersWithCategory(context.Background(), ReportFilter{DepartmentID: &other})
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestWorkloadRepositoryActivityRowsBoundsAndFlags(t *testing.T) {
	db := setupTestDB(t, &models.Role{}, &models.Category{}, &models.Member{}, &models.ActivityType{}, &models.ActivityRecord{})
	repo := NewWorkloadRepository(db)

	role := seedRole(t, db, models.RoleMember)
	titular := seedCategory(t, db, "Titular", "67.9")
	member := models.Member{Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", PasswordHash: "x", RoleID: role.ID, CategoryID: &titular.ID, Approved: true}
	require.NoError(t, db.Create(&member).Error)

	teaching := models.ActivityType{Name: "Pregrado", IsDirectTeaching: true, CountsAsPregrad: true}
	admin := models.ActivityType{Name: "Gestión"}
	require.NoError(t, db.Create(&teaching).Error)
	require.NoError(t, db.Create(&admin).Error)

	day := func(value string) time.Time {
		t.Helper()
		parsed, err := time.Parse("2006-01-02", value)
		require.NoError(t, err)
		return parsed
	}

	records := []models.ActivityRecord{
		{MemberID: member.ID, ActivityTypeID: teaching.ID, Date: day("2024-03-01"), Hours: decimal.RequireFromString("4")},
		{MemberID: member.ID, ActivityTypeID: admin.ID, Date: day("2024-03-31"), Hours: decimal.RequireFromString("2.5")},
		{MemberID: member.ID, ActivityTypeID: teaching.ID, Date: day("2024-04-01"), Hours: decimal.RequireFromString("8")},
	}
	require.NoError(t, db.Create(&records).Error)

	rows, err := repo.ActivityRows(context.Background(), []uint{member.ID}, day("2024-03-01"), day("2024-03-31"))
	require.NoError(t, err)
	require.Len(t, rows, 2, "April record falls outside the range")

	require.Equal(t, "Pregrado", rows[0].TypeName)
	require.True(t, rows[0].DirectTeaching)
	require.True(t, rows[0].Pregrad)
	require.False(t, rows[0].Preparation)
	require.True(t, rows[0].Hours.Equal(decimal.RequireFromString("4")))

	require.Equal(t, "Gestión", rows[1].TypeName)
	require.False(t, rows[1].DirectTeaching)

	none, err := repo.ActivityRows(context.Background(), nil, day("2024-03-01"), day("2024-03-31"))
	require.NoError(t, err)
	require.Empty(t, none)
}
