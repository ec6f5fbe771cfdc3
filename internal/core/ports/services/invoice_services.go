package services

import (
	"context"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/ledgerline/invoicing_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice with its items.
	GetInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices in a tenant.
	ListInvoices(ctx context.Context, tenantID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice computes totals from the request items and persists the
	// invoice with its items.
	CreateInvoice(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// UpdateInvoiceStatus performs an administrative status change.
	UpdateInvoiceStatus(ctx context.Context, tenantID string, invoiceID string, status domain.InvoiceStatus, requestingUserID string) (*domain.Invoice, error)

	// CancelInvoice cancels an invoice that has no payments applied.
	CancelInvoice(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) (*domain.Invoice, error)

	// DeleteInvoice soft deletes a draft invoice.
	DeleteInvoice(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
// This is a facade for clients that need access to all operations
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
