package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice with its items, scoped to a tenant.
	FindInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByTenant retrieves a paginated list of invoices for a tenant using
	// token-based pagination. Optional status and customer filters narrow the result.
	// It returns the invoices, a token for the next page, and an error.
	ListInvoicesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, status *domain.InvoiceStatus, customerID *string) ([]domain.Invoice, *string, error)

	// FindInvoicesByCustomer retrieves all live invoices for a customer, oldest first.
	// Used by the customer statement builder.
	FindInvoicesByCustomer(ctx context.Context, tenantID string, customerID string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists an invoice and its items within a single transaction.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error

	// UpdateInvoiceStatus sets the status of an invoice.
	UpdateInvoiceStatus(ctx context.Context, tenantID string, invoiceID string, status domain.InvoiceStatus, updatedByUserID string, updatedAt time.Time) error

	// CancelInvoice transitions an invoice to CANCELLED. It locks the invoice row
	// and fails with apperrors.ErrConflict if any payment has been applied.
	CancelInvoice(ctx context.Context, tenantID string, invoiceID string, updatedByUserID string, updatedAt time.Time) error
}

// InvoiceLifecycleManager defines operations for managing invoice lifecycle
type InvoiceLifecycleManager interface {
	// MarkInvoiceDeleted marks a draft invoice as deleted (soft delete).
	MarkInvoiceDeleted(ctx context.Context, tenantID string, invoiceID string, deletedAt time.Time, deletedBy string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
// This is a facade for clients that need access to all operations
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoiceLifecycleManager
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
