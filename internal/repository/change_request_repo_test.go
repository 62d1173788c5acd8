package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/models"
)

func changeRequestTestDB(t *testing.T) (*gorm.DB, models.Member, models.Category) {
	t.Helper()
	db := setupTestDB(t,
		&models.Role{}, &models.Department{}, &models.Category{}, &models.Member{},
		&models.CategoryChangeRequest{}, &models.RequestDocument{},
	)

	role := seedRole(t, db, models.RoleMember)
	current := seedCategory(t, db, "Asistente", "45")
	requested := seedCategory(t, db, "Auxiliar", "55")

	member := models.Member{Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", PasswordHash: "x", RoleID: role.ID, CategoryID: &current.ID, Approved: true}
	require.NoError(t, db.Create(&member).Error)

	return db, member, requested
}

func TestChangeRequestRepositoryCreateWithDocuments(t *testing.T) {
	db, member, requested := changeRequestTestDB(t)
	repo := NewChangeRequestRepository(db)

	request := models.CategoryChangeRequest{
		MemberID:            member.ID,
		CurrentCategoryID:   member.CategoryID,
		RequestedCategoryID: requested.ID,
		Status:              models.RequestStatusPending,
		Justification:       "Completed the required postgraduate degree.",
	}
	documents := []models.RequestDocument{
		{FileName: "degree.pdf", URL: "https://cdn.example.com/degree.pdf", MimeType: "application/pdf", SizeBytes: 1024, Checksum: "abc"},
	}

	require.NoError(t, repo.CreateWithDocuments(context.Background(), &request, documents))
	require.NotZero(t, request.ID)

	stored, err := repo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	require.Len(t, stored.Documents, 1)
	require.Equal(t, request.ID, stored.Documents[0].RequestID)
	require.Equal(t, "Auxiliar", stored.RequestedCategory.Name)
}

func TestChangeRequestRepositoryDecideApproveMovesMember(t *testing.T) {
	db, member, requested := changeRequestTestDB(t)
	repo := NewChangeRequestRepository(db)

	request := models.CategoryChangeRequest{
		MemberID:            member.ID,
		CurrentCategoryID:   member.CategoryID,
		RequestedCategoryID: requested.ID,
		Status:              models.RequestStatusPending,
		Justification:       "Completed the required postgraduate degree.",
	}
	require.NoError(t, repo.CreateWithDocuments(context.Background(), &request, nil))

	decided, err := repo.Decide(context.Background(), request.ID, 99, true)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	require.Equal(t, uint(99), *decided.DecidedBy)
	require.NotNil(t, decided.DecidedAt)

	var moved models.Member
	require.NoError(t, db.First(&moved, member.ID).Error)
	require.NotNil(t, moved.CategoryID)
	require.Equal(t, requested.ID, *moved.CategoryID)

	_, err = repo.Decide(context.Background(), request.ID, 99, false)
	require.ErrorIs(t, err, ErrRequestNotPending)
}

func TestChangeRequestRepositoryDecideRejectKeepsCategory(t *testing.T) {
	db, member, requested := changeRequestTestDB(t)
	repo := NewChangeRequestRepository(db)

	request := models.CategoryChangeRequest{
		MemberID:            member.ID,
		CurrentCategoryID:   member.CategoryID,
		RequestedCategoryID: requested.ID,
		Status:              models.RequestStatusPending,
		Justification:       "Completed the required postgraduate degree.",
	}
	require.NoError(t, repo.CreateWithDocuments(context.Background(), &request, nil))

	decided, err := repo.Decide(context.Background(), request.ID, 99, false)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusRejected, decided.Status)

	var unchanged models.Member
	require.NoError(t, db.First(&unchanged, member.ID).Error)
	require.Equal(t, *member.CategoryID, *unchanged.CategoryID)
}
