package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/repositories"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/auth"
	"github.com/yigit/studentdesk/internal/pkg/validation"
)

// LoginResult is returned on successful authentication
type LoginResult struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType" example:"Bearer"`
	ExpiresIn   int             `json:"expiresIn" example:"28800"`
	Identity    models.Identity `json:"identity"`
}

// CreateUserInput describes a new login account
type CreateUserInput struct {
	Email       string      `json:"email" validate:"required,email,max=255"`
	Password    string      `json:"password" validate:"required"`
	DisplayName string      `json:"displayName" validate:"trimmin=2,trimmax=100"`
	Role        models.Role `json:"role" validate:"oneof=admin professor student"`
}

// AuthService handles authentication operations
type AuthService struct {
	users      repositories.UserStore
	jwtService *auth.JWTService
	schema     *validation.Schema
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		schema:     validation.Default,
		logger:     logger,
	}
}

// Login checks credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Str("email", email).Msg("Login attempt for unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, translateStoreError("get user", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Info().Str("userID", user.ID.String()).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	identity := user.Identity()
	token, expiresIn, err := s.jwtService.GenerateAccessToken(identity)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID.String()).Str("role", string(user.Role)).Msg("User logged in")
	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Identity:    identity,
	}, nil
}

// Identity reloads the identity of a stored user
func (s *AuthService) Identity(ctx context.Context, userID uuid.UUID) (models.Identity, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Identity{}, translateStoreError("get user", err)
	}
	return user.Identity(), nil
}

// CreateUser validates, hashes and stores a new account
func (s *AuthService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.DisplayName = strings.TrimSpace(in.DisplayName)

	fields := s.schema.Fields(in)
	if reason := validatePassword(in.Password); reason != "" {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["password"] = reason
	}
	if fields != nil {
		return nil, apperrors.NewValidationError(fields)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: hash,
		DisplayName:  in.DisplayName,
		Role:         in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, translateStoreError("create user", err)
	}

	s.logger.Info().Str("userID", user.ID.String()).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// ListUsers returns every stored account
func (s *AuthService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, translateStoreError("list users", err)
	}
	return users, nil
}

// validatePassword returns the reason a password is rejected, or ""
func validatePassword(password string) string {
	if len(password) < auth.MinPasswordLength {
		return fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "password must contain at least one letter and one digit"
	}
	return ""
}
