package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/studentdesk/internal/app/models"
	appRepos "github.com/yigit/studentdesk/internal/app/repositories"
	appServices "github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// Admin describes the administrator account created on first start
type Admin struct {
	Email       string
	Password    string
	DisplayName string
}

// CreateDefaultData creates the administrator account when no account with its
// email exists yet. An empty email disables seeding.
func CreateDefaultData(ctx context.Context, users appRepos.UserStore, authService *appServices.AuthService, admin Admin, lgr zerolog.Logger) error {
	if admin.Email == "" {
		lgr.Debug().Msg("No seed administrator configured, skipping default data")
		return nil
	}

	lgr.Info().Str("email", admin.Email).Msg("Checking/Creating default administrator...")

	existing, err := users.GetByEmail(ctx, admin.Email)
	switch {
	case err == nil:
		if existing.Role != appModels.RoleAdmin {
			lgr.Warn().
				Str("email", admin.Email).
				Str("role", string(existing.Role)).
				Msg("Seed administrator email belongs to a non-admin account")
		}
		lgr.Info().Msg("Default administrator already exists")
		return nil
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return fmt.Errorf("failed to look up seed administrator: %w", err)
	}

	user, err := authService.CreateUser(ctx, appServices.CreateUserInput{
		Email:       admin.Email,
		Password:    admin.Password,
		DisplayName: admin.DisplayName,
		Role:        appModels.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create seed administrator: %w", err)
	}

	lgr.Info().Str("userID", user.ID.String()).Msg("Default administrator created")
	return nil
}
