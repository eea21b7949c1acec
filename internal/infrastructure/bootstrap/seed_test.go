package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/assignhub/assignment-api/internal/core/domain"
	"github.com/assignhub/assignment-api/internal/core/ports"
	"github.com/assignhub/assignment-api/internal/pkg/config"
)

type stubUserService struct {
	ports.UserService

	input     ports.CreateUserInput
	createErr error
}

func (s *stubUserService) CreateUser(_ context.Context, input ports.CreateUserInput) (string, error) {
	s.input = input
	return "token", s.createErr
}

var adminCfg = config.AdminConfig{
	Username:  "adminabc",
	Password:  "adminPass1",
	Email:     "admin@example.com",
	FirstName: "Ada",
	LastName:  "Admin",
}

func TestSeed_CreatesManagerAdmin(t *testing.T) {
	svc := &stubUserService{}

	if err := Seed(context.Background(), svc, adminCfg, zerolog.Nop()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if svc.input.Role != domain.RoleManager {
		t.Fatalf("expected seeded admin role %s, got %s", domain.RoleManager, svc.input.Role)
	}
	if svc.input.Username != "adminabc" || svc.input.Email != "admin@example.com" {
		t.Fatalf("unexpected input: %+v", svc.input)
	}
}

func TestSeed_IdempotentOnConflict(t *testing.T) {
	conflicts := []error{
		domain.ErrUserExists,
		domain.ErrUsernameExists,
		domain.ErrEmailExists,
		domain.ErrIntegrityViolation,
	}
	for _, conflict := range conflicts {
		svc := &stubUserService{createErr: conflict}
		if err := Seed(context.Background(), svc, adminCfg, zerolog.Nop()); err != nil {
			t.Fatalf("expected conflict %v swallowed, got %v", conflict, err)
		}
	}
}

func TestSeed_PropagatesOtherErrors(t *testing.T) {
	svc := &stubUserService{createErr: domain.ErrConnection}
	if err := Seed(context.Background(), svc, adminCfg, zerolog.Nop()); !errors.Is(err, domain.ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
}
