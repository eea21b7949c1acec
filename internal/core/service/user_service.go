package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/assignhub/assignment-api/internal/api/metrics"
	"github.com/assignhub/assignment-api/internal/core/domain"
	"github.com/assignhub/assignment-api/internal/core/ports"
)

// UserService implements user business rules on top of the generic repository
// and the auth engine.
type UserService struct {
	repo  ports.Repository[domain.User]
	auth  ports.AuthService
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(repo ports.Repository[domain.User], auth ports.AuthService, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, auth: auth, audit: audit, log: log}
}

// CreateUser registers a new user. The natural key is username+email: a
// collision on both yields ErrUserExists, on username alone ErrUsernameExists,
// on email alone ErrEmailExists. The admin flag is derived from the role and
// never accepted from the caller.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (string, error) {
	if !domain.ValidRole(input.Role) {
		return "", domain.ErrInvalidRole
	}

	username := domain.NormalizeUsername(input.Username)
	email := domain.NormalizeEmail(input.Email)

	existing, err := s.repo.Find(ctx, map[string]any{
		"username": username,
		"email":    email,
	}, false)
	if err != nil {
		return "", err
	}
	for _, u := range existing {
		switch {
		case u.Username == username && u.Email == email:
			return "", domain.ErrUserExists
		case u.Username == username:
			return "", domain.ErrUsernameExists
		case u.Email == email:
			return "", domain.ErrEmailExists
		}
	}

	digest, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Username:       username,
		HashedPassword: digest,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Role:           input.Role,
		Email:          email,
		Active:         true,
		Admin:          domain.IsAdminRole(input.Role),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("user").Inc()
	s.recordAudit(ctx, created.ID, "create")
	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user created")

	return s.auth.CreateToken(created)
}

// UpdateUser applies profile mutations to an existing user.
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.findUser(ctx, map[string]any{"id": userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	updated, err := s.repo.Update(ctx, user, map[string]any{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"email":      domain.NormalizeEmail(input.Email),
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, updated.ID, "update")
	return updated, nil
}

// GetUserByID fetches a single user, optionally with its project.
func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID, withProject bool) (*domain.User, error) {
	var relations []string
	if withProject {
		relations = []string{"project"}
	}

	user, err := s.findUser(ctx, map[string]any{"id": userID}, relations...)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// GetCurrentUser resolves the user behind a decoded session token, project
// included.
func (s *UserService) GetCurrentUser(ctx context.Context, token *ports.TokenData) (*domain.User, error) {
	return s.GetUserByID(ctx, token.ID, true)
}

// ListUsers returns all users, optionally with their projects.
func (s *UserService) ListUsers(ctx context.Context, withProjects bool) ([]*domain.User, error) {
	var relations []string
	if withProjects {
		relations = []string{"project"}
	}
	return s.repo.ListAll(ctx, relations...)
}

// DeleteUser removes a user after resolving it by id.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.findUser(ctx, map[string]any{"id": userID})
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, user); err != nil {
		return err
	}

	s.recordAudit(ctx, userID, "delete")
	s.log.Info().Str("username", user.Username).Msg("user deleted")
	return nil
}

// UpdateUserProject assigns or detaches the user's project. The mutation is a
// single repository update of project_id, with the project relation reloaded
// on the way out.
func (s *UserService) UpdateUserProject(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID) (*domain.User, error) {
	user, err := s.findUser(ctx, map[string]any{"id": userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	updated, err := s.repo.Update(ctx, user, map[string]any{"project_id": projectID}, "project")
	if err != nil {
		return nil, err
	}

	action := "assign_project"
	if projectID == nil {
		action = "unassign_project"
	}
	s.recordAudit(ctx, userID, action)
	s.log.Info().Str("username", updated.Username).Str("action", action).Msg("user project updated")
	return updated, nil
}

// findUser returns the first match for the filters, or nil when nothing
// matches.
func (s *UserService) findUser(ctx context.Context, filters map[string]any, relations ...string) (*domain.User, error) {
	results, err := s.repo.Find(ctx, filters, false, relations...)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (s *UserService) recordAudit(ctx context.Context, id uuid.UUID, action string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Entity:   "user",
		EntityID: id,
		Action:   action,
		Actor:    domain.ActorFrom(ctx),
	})
}
