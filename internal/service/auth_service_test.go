package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/repository"
)

type memberRepoStub struct {
	members map[uint]models.Member
	nextID  uint
}

func newMemberRepoStub() *memberRepoStub {
	return &memberRepoStub{members: make(map[uint]models.Member), nextID: 1}
}

func (m *memberRepoStub) Create(ctx context.Context, member *models.Member) error {
	member.ID = m.nextID
	m.nextID++
	m.members[member.ID] = *member
	return nil
}

func (m *memberRepoStub) GetByID(ctx context.Context, id uint) (models.Member, error) {
	member, ok := m.members[id]
	if !ok {
		return models.Member{}, gorm.ErrRecordNotFound
	}
	return member, nil
}

func (m *memberRepoStub) GetByEmail(ctx context.Context, email string) (models.Member, error) {
	for _, member := range m.members {
		if strings.EqualFold(member.Email, email) {
			return member, nil
		}
	}
	return models.Member{}, gorm.ErrRecordNotFound
}

func (m *memberRepoStub) List(ctx context.Context, filter repository.MemberFilter) ([]models.Member, int64, error) {
	out := make([]models.Member, 0, len(m.members))
	for _, member := range m.members {
		out = append(out, member)
	}
	return out, int64(len(out)), nil
}

func (m *memberRepoStub) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Member, error) {
	member, ok := m.members[id]
	if !ok {
		return models.Member{}, gorm.ErrRecordNotFound
	}
	if approved, ok := updates["approved"].(bool); ok {
		member.Approved = approved
	}
	if categoryID, ok := updates["category_id"].(uint); ok {
		member.CategoryID = &categoryID
	}
	if name, ok := updates["name"].(string); ok {
		member.Name = name
	}
	m.members[id] = member
	return member, nil
}

func (m *memberRepoStub) Delete(ctx context.Context, id uint) error {
	if _, ok := m.members[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.members, id)
	return nil
}

type roleRepoStub struct{}

func (roleRepoStub) List(ctx context.Context) ([]models.Role, error) {
	return []models.Role{{ID: 1, Name: models.RoleAdmin}, {ID: 2, Name: models.RoleMember}}, nil
}

func (roleRepoStub) GetByName(ctx context.Context, name string) (models.Role, error) {
	switch name {
	case models.RoleAdmin:
		return models.Role{ID: 1, Name: models.RoleAdmin}, nil
	case models.RoleMember:
		return models.Role{ID: 2, Name: models.RoleMember}, nil
	}
	return models.Role{}, gorm.ErrRecordNotFound
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	members := newMemberRepoStub()
	svc := NewAuthService(members, roleRepoStub{}, testValidator(), "test-secret", time.Hour, testLogger())

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Ana",
		Surname:  "Blanco",
		Email:    "Ana@Uni.Edu",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, "ana@uni.edu", registered.Email, "email lowercased")
	require.False(t, registered.Approved, "accounts start unapproved")
	require.Equal(t, models.RoleMember, registered.Role)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "ana@uni.edu", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrMemberNotApproved)

	stored := members.members[registered.ID]
	stored.Approved = true
	stored.Role = models.Role{ID: 2, Name: models.RoleMember}
	members.members[registered.ID] = stored

	auth, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ana@uni.edu", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, auth.Token)
	require.True(t, auth.ExpiresAt.After(time.Now()))

	token, err := jwt.Parse(auth.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "1", claims["sub"])
	require.Equal(t, models.RoleMember, claims["role"])
}

func TestAuthServiceRejectsDuplicateEmail(t *testing.T) {
	members := newMemberRepoStub()
	svc := NewAuthService(members, roleRepoStub{}, testValidator(), "test-secret", time.Hour, testLogger())

	req := dto.RegisterRequest{Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", Password: "correct-horse"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthServiceRejectsBadPassword(t *testing.T) {
	members := newMemberRepoStub()
	svc := NewAuthService(members, roleRepoStub{}, testValidator(), "test-secret", time.Hour, testLogger())

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", Password: "correct-horse",
	})
	require.NoError(t, err)

	stored := members.members[registered.ID]
	stored.Approved = true
	members.members[registered.ID] = stored

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "ana@uni.edu", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@uni.edu", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
