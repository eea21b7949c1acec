package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/assignhub/assignment-api/internal/core/domain"
)

// CreateCustomerInput carries the data for a new customer.
type CreateCustomerInput struct {
	Name    string
	Details string
}

// UpdateCustomerInput carries customer mutations.
type UpdateCustomerInput struct {
	Name    string
	Details string
	Active  *bool
}

// GetCustomerInput selects a customer by name or ID and controls relation
// depth. Users are only loaded when Projects is also set, since users hang
// off the customer's projects.
type GetCustomerInput struct {
	ID       *uuid.UUID
	Name     string
	Projects bool
	Users    bool
}

// CustomerService defines use-case operations for customers.
type CustomerService interface {
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, input GetCustomerInput) (*domain.Customer, error)
	ListCustomers(ctx context.Context, projects, users bool) ([]*domain.Customer, error)
	// DeleteCustomer removes the customer; its projects go with it (store
	// cascade).
	DeleteCustomer(ctx context.Context, customerID uuid.UUID) error
}
