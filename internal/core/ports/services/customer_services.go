package services

import (
	"context"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/ledgerline/invoicing_app/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a customer by ID.
	GetCustomerByID(ctx context.Context, tenantID string, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers in a tenant.
	ListCustomers(ctx context.Context, tenantID string, params dto.ListCustomersParams) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer creates a new customer.
	CreateCustomer(ctx context.Context, tenantID string, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	// UpdateCustomer updates an existing customer.
	UpdateCustomer(ctx context.Context, tenantID string, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error)

	// DeleteCustomer marks a customer as deleted (soft delete).
	DeleteCustomer(ctx context.Context, tenantID string, customerID string, requestingUserID string) error
}

// CustomerStatementSvc defines the statement builder
type CustomerStatementSvc interface {
	// GetCustomerStatement builds the merged invoice/payment ledger for one
	// customer with running totals.
	GetCustomerStatement(ctx context.Context, tenantID string, customerID string) (*domain.CustomerStatement, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
	CustomerStatementSvc
}
