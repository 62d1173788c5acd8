package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/repository"
)

// Authentication failures reported to callers.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMemberNotApproved  = errors.New("member account pending approval")
)

// AuthService registers members and issues access tokens.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.MemberResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
}

type authService struct {
	members   repository.MemberRepository
	roles     repository.RoleRepository
	validator *validator.Validate
	secret    string
	expiry    time.Duration
	logger    zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(members repository.MemberRepository, roles repository.RoleRepository, validate *validator.Validate, secret string, expiry time.Duration, logger zerolog.Logger) AuthService {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &authService{
		members:   members,
		roles:     roles,
		validator: validate,
		secret:    secret,
		expiry:    expiry,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates an unapproved account with the default member role. New
// accounts stay out of reports and protected routes until an administrator
// approves them.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.MemberResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MemberResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.members.GetByEmail(ctx, email); err == nil {
		return dto.MemberResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.MemberResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.MemberResponse{}, err
	}

	role, err := s.roles.GetByName(ctx, models.RoleMember)
	if err != nil {
		return dto.MemberResponse{}, err
	}

	member := models.Member{
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		DepartmentID: req.DepartmentID,
	}
	if err := s.members.Create(ctx, &member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.MemberResponse{}, ErrEmailTaken
		}
		return dto.MemberResponse{}, err
	}

	member.Role = role
	s.logger.Info().Uint("member_id", member.ID).Msg("member registered")

	return dto.NewMemberResponse(member), nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	member, err := s.members.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	if !member.Approved {
		return dto.AuthResponse{}, ErrMemberNotApproved
	}

	expiresAt := time.Now().Add(s.expiry)
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(member.ID), 10),
		"role": member.Role.Name,
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Member:    dto.NewMemberResponse(member),
	}, nil
}
