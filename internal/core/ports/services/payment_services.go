package services

import (
	"context"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/ledgerline/invoicing_app/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a payment by ID.
	GetPaymentByID(ctx context.Context, tenantID string, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a paginated list of payments in a tenant.
	ListPayments(ctx context.Context, tenantID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// CreatePayment records a payment. When the request names an invoice, the
	// payment is applied to it atomically and the updated invoice is returned.
	CreatePayment(ctx context.Context, tenantID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, *domain.Invoice, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
