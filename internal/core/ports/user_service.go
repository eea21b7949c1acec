package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/assignhub/assignment-api/internal/core/domain"
)

// CreateUserInput carries all data needed to register a new user. Password is
// plaintext; the service hashes it before anything is persisted.
type CreateUserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Email     string
}

// UpdateUserInput carries the self-service profile mutations.
type UpdateUserInput struct {
	FirstName string
	LastName  string
	Email     string
}

// UserService defines use-case operations for users.
type UserService interface {
	// CreateUser registers a user after checking username and email
	// uniqueness, then returns a signed session token for the new account.
	CreateUser(ctx context.Context, input CreateUserInput) (string, error)

	// UpdateUser applies profile updates to an existing user.
	UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)

	// GetUserByID fetches a single user, optionally with its project.
	GetUserByID(ctx context.Context, userID uuid.UUID, withProject bool) (*domain.User, error)

	// GetCurrentUser resolves the user behind a decoded token, project included.
	GetCurrentUser(ctx context.Context, token *TokenData) (*domain.User, error)

	// ListUsers returns all users, optionally with their projects.
	ListUsers(ctx context.Context, withProjects bool) ([]*domain.User, error)

	// DeleteUser removes a user, detaching any project reference with it.
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// UpdateUserProject assigns (non-nil) or detaches (nil) the user's
	// project in a single update, reloading the project relation.
	UpdateUserProject(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID) (*domain.User, error)
}
