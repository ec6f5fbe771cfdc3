package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portsrepo "github.com/ledgerline/invoicing_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/invoicing_app/internal/core/ports/services"
	"github.com/ledgerline/invoicing_app/internal/dto"
)

type paymentService struct {
	BaseService
	paymentRepo  portsrepo.PaymentRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewPaymentService creates the payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) GetPaymentByID(ctx context.Context, tenantID string, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, tenantID, paymentID)
}

func (s *paymentService) ListPayments(ctx context.Context, tenantID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	payments, nextToken, err := s.paymentRepo.ListPaymentsByTenant(ctx, tenantID, params.Limit, params.NextToken, params.CustomerID, params.InvoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", "tenant_id", tenantID)
		return nil, err
	}

	resp := dto.ToListPaymentsResponse(payments, nextToken)
	return &resp, nil
}

func (s *paymentService) CreatePayment(ctx context.Context, tenantID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, *domain.Invoice, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.ErrInvalidAmount
	}

	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, nil, apperrors.NewBadRequestError("unknown payment method")
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, tenantID, req.CustomerID); err != nil {
		return nil, nil, err
	}

	// A payment targeting an invoice must belong to the invoice's customer.
	if req.InvoiceID != nil {
		invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, tenantID, *req.InvoiceID)
		if err != nil {
			return nil, nil, err
		}
		if invoice.CustomerID != req.CustomerID {
			return nil, nil, apperrors.NewBadRequestError("invoice does not belong to this customer")
		}
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		TenantID:    tenantID,
		CustomerID:  req.CustomerID,
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if req.InvoiceID == nil {
		if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
			s.LogError(ctx, err, "Failed to save payment", "tenant_id", tenantID)
			return nil, nil, err
		}
		s.LogInfo(ctx, "Unallocated payment recorded",
			"payment_id", payment.PaymentID,
			"tenant_id", tenantID,
			"amount", payment.Amount.String(),
		)
		return &payment, nil, nil
	}

	updatedInvoice, err := s.paymentRepo.SavePaymentAndApply(ctx, payment)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply payment",
			"tenant_id", tenantID,
			"invoice_id", *req.InvoiceID,
		)
		return nil, nil, err
	}

	s.LogInfo(ctx, "Payment applied to invoice",
		"payment_id", payment.PaymentID,
		"invoice_id", updatedInvoice.InvoiceID,
		"amount", payment.Amount.String(),
		"invoice_status", string(updatedInvoice.Status),
	)
	return &payment, updatedInvoice, nil
}
