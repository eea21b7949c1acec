package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/assignhub/assignment-api/internal/core/domain"
)

// CreateProjectInput carries the data for a new project. CustomerID is the
// required owning customer.
type CreateProjectInput struct {
	Name       string
	Status     domain.ProjectStatus
	Details    string
	CustomerID uuid.UUID
}

// UpdateProjectInput carries project mutations.
type UpdateProjectInput struct {
	Name    string
	Status  domain.ProjectStatus
	Details string
	Active  *bool
}

// GetProjectInput selects a project by name or ID.
type GetProjectInput struct {
	ID    *uuid.UUID
	Name  string
	Users bool
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID uuid.UUID, input UpdateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, input GetProjectInput) (*domain.Project, error)
	ListProjects(ctx context.Context, users bool) ([]*domain.Project, error)
	// DeleteProject removes the project. Assigned users survive; their
	// project reference is cleared by the store constraint.
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
}
