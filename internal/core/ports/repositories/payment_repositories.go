package repositories

import (
	"context"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by ID, scoped to a tenant.
	FindPaymentByID(ctx context.Context, tenantID string, paymentID string) (*domain.Payment, error)

	// ListPaymentsByTenant retrieves a paginated list of payments for a tenant using
	// token-based pagination. Optional customer and invoice filters narrow the result.
	ListPaymentsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, customerID *string, invoiceID *string) ([]domain.Payment, *string, error)

	// FindPaymentsByCustomer retrieves all live payments for a customer, oldest first.
	// Used by the customer statement builder.
	FindPaymentsByCustomer(ctx context.Context, tenantID string, customerID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists a payment that is not applied to any invoice.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// SavePaymentAndApply persists a payment and applies it to its invoice in a
	// single transaction. The invoice row is locked, the new paid amount and
	// status are derived from the locked state, and both rows are written
	// together. It returns the updated invoice.
	SavePaymentAndApply(ctx context.Context, payment domain.Payment) (*domain.Invoice, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction capabilities
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
