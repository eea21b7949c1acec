package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/assignhub/assignment-api/internal/api/metrics"
	"github.com/assignhub/assignment-api/internal/core/domain"
	"github.com/assignhub/assignment-api/internal/core/ports"
)

// CustomerService implements customer business rules.
type CustomerService struct {
	repo  ports.Repository[domain.Customer]
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewCustomerService(repo ports.Repository[domain.Customer], audit ports.AuditRecorder, log zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, audit: audit, log: log}
}

// CreateCustomer stores a new customer after checking name uniqueness.
func (s *CustomerService) CreateCustomer(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
	existing, err := s.findCustomer(ctx, map[string]any{"name": input.Name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCustomerExists
	}

	customer := &domain.Customer{
		Name:    input.Name,
		Details: input.Details,
		Active:  true,
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("customer").Inc()
	s.recordAudit(ctx, created.ID, "create")
	s.log.Info().Str("name", created.Name).Msg("customer created")
	return created, nil
}

// UpdateCustomer applies mutations to an existing customer, returning it with
// projects loaded.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID uuid.UUID, input ports.UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.findCustomer(ctx, map[string]any{"id": customerID})
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	updates := map[string]any{
		"name":    input.Name,
		"details": input.Details,
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	updated, err := s.repo.Update(ctx, customer, updates, "projects")
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, customerID, "update")
	return updated, nil
}

// GetCustomer fetches a customer by name or id. Users ride along only when
// projects are loaded too, since they hang off the customer's projects.
func (s *CustomerService) GetCustomer(ctx context.Context, input ports.GetCustomerInput) (*domain.Customer, error) {
	filters := map[string]any{}
	if input.ID != nil {
		filters["id"] = *input.ID
	}
	if input.Name != "" {
		filters["name"] = input.Name
	}
	if len(filters) == 0 {
		return nil, domain.ErrCustomerNotFound
	}

	customer, err := s.findCustomer(ctx, filters, customerRelations(input.Projects, input.Users)...)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// ListCustomers returns all customers with the requested relation depth.
func (s *CustomerService) ListCustomers(ctx context.Context, projects, users bool) ([]*domain.Customer, error) {
	return s.repo.ListAll(ctx, customerRelations(projects, users)...)
}

// DeleteCustomer removes the customer; the store cascade removes its
// projects.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	customer, err := s.findCustomer(ctx, map[string]any{"id": customerID})
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrCustomerNotFound
	}

	if err := s.repo.Delete(ctx, customer); err != nil {
		return err
	}

	s.recordAudit(ctx, customerID, "delete")
	s.log.Info().Str("name", customer.Name).Msg("customer deleted")
	return nil
}

func (s *CustomerService) findCustomer(ctx context.Context, filters map[string]any, relations ...string) (*domain.Customer, error) {
	results, err := s.repo.Find(ctx, filters, false, relations...)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (s *CustomerService) recordAudit(ctx context.Context, id uuid.UUID, action string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Entity:   "customer",
		EntityID: id,
		Action:   action,
		Actor:    domain.ActorFrom(ctx),
	})
}

// customerRelations maps the projects/users flags onto relation names. Users
// without projects is a no-op by contract.
func customerRelations(projects, users bool) []string {
	switch {
	case projects && users:
		return []string{"projects", "projects.users"}
	case projects:
		return []string{"projects"}
	default:
		return nil
	}
}
