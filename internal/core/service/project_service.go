package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/assignhub/assignment-api/internal/api/metrics"
	"github.com/assignhub/assignment-api/internal/core/domain"
	"github.com/assignhub/assignment-api/internal/core/ports"
)

// ProjectService implements project business rules.
type ProjectService struct {
	repo  ports.Repository[domain.Project]
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewProjectService(repo ports.Repository[domain.Project], audit ports.AuditRecorder, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, audit: audit, log: log}
}

// CreateProject stores a new project after checking name uniqueness. A
// referential failure on the owning customer surfaces as
// ErrCustomerNotFound.
func (s *ProjectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	if !domain.ValidStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	existing, err := s.findProject(ctx, map[string]any{"name": input.Name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrProjectExists
	}

	project := &domain.Project{
		Name:       input.Name,
		Status:     input.Status,
		Details:    input.Details,
		CustomerID: input.CustomerID,
		Active:     true,
	}
	created, err := s.repo.Create(ctx, project)
	if err != nil {
		// The only FK on project is the owning customer.
		if errors.Is(err, domain.ErrIntegrityViolation) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("project").Inc()
	s.recordAudit(ctx, created.ID, "create")
	s.log.Info().Str("name", created.Name).Str("customer_id", created.CustomerID.String()).Msg("project created")
	return created, nil
}

// UpdateProject applies mutations to an existing project.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID uuid.UUID, input ports.UpdateProjectInput) (*domain.Project, error) {
	if !domain.ValidStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	project, err := s.findProject(ctx, map[string]any{"id": projectID})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}

	updates := map[string]any{
		"name":    input.Name,
		"status":  input.Status,
		"details": input.Details,
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	updated, err := s.repo.Update(ctx, project, updates)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, projectID, "update")
	return updated, nil
}

// GetProject fetches a project by name or id, optionally with its assigned
// users.
func (s *ProjectService) GetProject(ctx context.Context, input ports.GetProjectInput) (*domain.Project, error) {
	filters := map[string]any{}
	if input.ID != nil {
		filters["id"] = *input.ID
	}
	if input.Name != "" {
		filters["name"] = input.Name
	}
	if len(filters) == 0 {
		return nil, domain.ErrProjectNotFound
	}

	var relations []string
	if input.Users {
		relations = []string{"users"}
	}

	project, err := s.findProject(ctx, filters, relations...)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

// ListProjects returns all projects, optionally with their assigned users.
func (s *ProjectService) ListProjects(ctx context.Context, users bool) ([]*domain.Project, error) {
	var relations []string
	if users {
		relations = []string{"users"}
	}
	return s.repo.ListAll(ctx, relations...)
}

// DeleteProject removes the project. Assigned users are detached, not
// deleted: the user foreign key is ON DELETE SET NULL.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.findProject(ctx, map[string]any{"id": projectID})
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrProjectNotFound
	}

	if err := s.repo.Delete(ctx, project); err != nil {
		return err
	}

	s.recordAudit(ctx, projectID, "delete")
	s.log.Info().Str("name", project.Name).Msg("project deleted")
	return nil
}

func (s *ProjectService) findProject(ctx context.Context, filters map[string]any, relations ...string) (*domain.Project, error) {
	results, err := s.repo.Find(ctx, filters, false, relations...)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (s *ProjectService) recordAudit(ctx context.Context, id uuid.UUID, action string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Entity:   "project",
		EntityID: id,
		Action:   action,
		Actor:    domain.ActorFrom(ctx),
	})
}
