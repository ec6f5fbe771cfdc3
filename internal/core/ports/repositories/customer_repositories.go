package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by ID, scoped to a tenant.
	FindCustomerByID(ctx context.Context, tenantID string, customerID string) (*domain.Customer, error)

	// ListCustomersByTenant retrieves a paginated list of customers for a tenant.
	// An optional search term filters on name and email.
	ListCustomersByTenant(ctx context.Context, tenantID string, limit int, offset int, search *string) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerLifecycleManager defines operations for managing customer lifecycle
type CustomerLifecycleManager interface {
	// MarkCustomerDeleted marks a customer as deleted (soft delete).
	MarkCustomerDeleted(ctx context.Context, tenantID string, customerID string, deletedAt time.Time, deletedBy string) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
	CustomerLifecycleManager
}
