package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/models"
)

func setupTestDB(t *testing.T, entities ...interface{}) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))
	return db
}

func seedRole(t *testing.T, db *gorm.DB, name string) models.Role {
	t.Helper()
	role := models.Role{Name: name}
	require.NoError(t, db.Create(&role).Error)
	return role
}

func seedCategory(t *testing.T, db *gorm.DB, name string, norm string) models.Category {
	t.Helper()
	category := models.Category{Name: name, WeeklyHourNorm: decimal.RequireFromString(norm)}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func TestMemberRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t, &models.Role{}, &models.Department{}, &models.Category{}, &models.Member{})
	repo := NewMemberRepository(db)

	memberRole := seedRole(t, db, models.RoleMember)
	titular := seedCategory(t, db, "Titular", "67.9")

	approved := models.Member{Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", PasswordHash: "x", RoleID: memberRole.ID, CategoryID: &titular.ID, Approved: true}
	pending := models.Member{Name: "Bruno", Surname: "Acosta", Email: "bruno@uni.edu", PasswordHash: "x", RoleID: memberRole.ID}
	require.NoError(t, db.Create(&approved).Error)
	require.NoError(t, db.Create(&pending).Error)

	all, total, err := repo.List(context.Background(), MemberFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, all, 2)
	require.Equal(t, "Acosta", all[0].Surname, "surname ordering")

	isApproved := true
	filtered, total, err := repo.List(context.Background(), MemberFilter{Approved: &isApproved})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "ana@uni.edu", filtered[0].Email)
	require.Equal(t, "Titular", filtered[0].Category.Name, "category preloaded")

	searched, total, err := repo.List(context.Background(), MemberFilter{Search: "BRU"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Bruno", searched[0].Name)
}

func TestMemberRepositoryGetByEmailIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t, &models.Role{}, &models.Department{}, &models.Category{}, &models.Member{})
	repo := NewMemberRepository(db)

	role := seedRole(t, db, models.RoleMember)
	member := models.Member{Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", PasswordHash: "x", RoleID: role.ID}
	require.NoError(t, db.Create(&member).Error)

	found, err := repo.GetByEmail(context.Background(), "ANA@uni.edu")
	require.NoError(t, err)
	require.Equal(t, member.ID, found.ID)

	_, err = repo.GetByEmail(context.Background(), "missing@uni.edu")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemberRepositoryUpdateMissingRow(t *testing.T) {
	db := setupTestDB(t, &models.Role{}, &models.Department{}, &models.Category{}, &models.Member{})
	repo := NewMemberRepository(db)

	_, err := repo.Update(context.Background(), 42, map[string]interface{}{"approved": true})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryRepositoryCountMembers(t *testing.T) {
	db := setupTestDB(t, &models.Role{}, &models.Department{}, &models.Category{}, &models.Member{})
	categories := NewCategoryRepository(db)

	role := seedRole(t, db, models.RoleMember)
	titular := seedCategory(t, db, "Titular", "67.9")
	auxiliar := seedCategory(t, db, "Auxiliar", "55")

	member := models.Member{Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", PasswordHash: "x", RoleID: role.ID, CategoryID: &titular.ID}
	require.NoError(t, db.Create(&member).Error)

	used, err := categories.CountMembers(context.Background(), titular.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), used)

	free, err := categories.CountMembers(context.Background(), auxiliar.ID)
	require.NoError(t, err)
	require.Zero(t, free)
}
