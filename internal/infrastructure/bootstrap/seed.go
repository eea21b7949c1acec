package bootstrap

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/assignhub/assignment-api/internal/core/domain"
	"github.com/assignhub/assignment-api/internal/core/ports"
	"github.com/assignhub/assignment-api/internal/pkg/config"
)

// Seed creates the administrative user from the bootstrap configuration.
// Idempotent: a uniqueness conflict means a previous run already seeded the
// account and is not an error.
func Seed(ctx context.Context, users ports.UserService, admin config.AdminConfig, log zerolog.Logger) error {
	_, err := users.CreateUser(ctx, ports.CreateUserInput{
		Username:  admin.Username,
		Password:  admin.Password,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		Role:      domain.RoleManager,
		Email:     admin.Email,
	})
	switch {
	case err == nil:
		log.Info().Str("username", admin.Username).Msg("admin user seeded")
		return nil
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrUsernameExists),
		errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrIntegrityViolation):
		log.Info().Str("username", admin.Username).Msg("admin user already seeded")
		return nil
	default:
		return err
	}
}
