package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/auth"
)

// CreateDefaultData makes sure the platform has an administrator. An existing
// account with the admin email is promoted instead of recreated.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, adminEmail, adminPassword string, lgr zerolog.Logger) error {
	if adminEmail == "" {
		lgr.Info().Msg("No admin email configured, skipping default data")
		return nil
	}
	if adminPassword == "" {
		return errors.New("an admin password is required to create the default admin")
	}

	user, err := repos.AuthUsers.GetByEmail(ctx, adminEmail)
	switch {
	case err == nil:
		lgr.Info().Msg("Admin user already exists, skipping creation")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		lgr.Info().Str("email", adminEmail).Msg("Creating default admin user...")
		hashedPassword, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("error hashing admin password: %w", err)
		}
		user = &models.AuthUser{
			ID:           uuid.New(),
			Email:        adminEmail,
			PasswordHash: hashedPassword,
			Provider:     models.ProviderEmail,
			Metadata: models.UserMetadata{
				FullName: "System Administrator",
				Role:     models.RoleAdmin,
			},
		}
		if err := repos.AuthUsers.Create(ctx, user); err != nil {
			return fmt.Errorf("error creating admin user: %w", err)
		}
	default:
		return fmt.Errorf("error checking for admin user: %w", err)
	}

	profile, err := repos.Profiles.GetByID(ctx, user.ID)
	switch {
	case err == nil:
		if profile.Role != models.RoleAdmin {
			if err := repos.Profiles.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
				return fmt.Errorf("error promoting admin profile: %w", err)
			}
			lgr.Warn().Str("userID", user.ID.String()).Msg("Existing account promoted to admin")
		}
	case errors.Is(err, apperrors.ErrResourceNotFound):
		profile = user.ProfileFromMetadata()
		profile.Role = models.RoleAdmin
		if err := repos.Profiles.Upsert(ctx, profile); err != nil {
			return fmt.Errorf("error creating admin profile: %w", err)
		}
		lgr.Info().Str("userID", user.ID.String()).Msg("Default admin user created successfully")
	default:
		return fmt.Errorf("error loading admin profile: %w", err)
	}
	return nil
}
