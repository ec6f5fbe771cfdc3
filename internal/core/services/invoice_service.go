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
	"github.com/ledgerline/invoicing_app/internal/utils/invoicing"
	"github.com/shopspring/decimal"
)

type invoiceService struct {
	BaseService
	invoiceRepo    portsrepo.InvoiceRepositoryFacade
	customerRepo   portsrepo.CustomerRepositoryFacade
	defaultTaxRate decimal.Decimal
}

// NewInvoiceService creates the invoice service. defaultTaxRate is applied to
// invoices whose request carries no rate.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	defaultTaxRate decimal.Decimal,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:    invoiceRepo,
		customerRepo:   customerRepo,
		defaultTaxRate: defaultTaxRate,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) GetInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, tenantID, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, tenantID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	var status *domain.InvoiceStatus
	if params.Status != nil {
		st := domain.InvoiceStatus(*params.Status)
		status = &st
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoicesByTenant(ctx, tenantID, params.Limit, params.NextToken, status, params.CustomerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", "tenant_id", tenantID)
		return nil, err
	}

	resp := dto.ToListInvoicesResponse(invoices, nextToken)
	return &resp, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, tenantID, req.CustomerID); err != nil {
		return nil, err
	}

	itemInputs := make([]invoicing.ItemInput, len(req.Items))
	for i, item := range req.Items {
		itemInputs[i] = invoicing.ItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	if err := invoicing.ValidateItems(itemInputs); err != nil {
		return nil, err
	}

	taxRate := s.defaultTaxRate
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			return nil, apperrors.NewBadRequestError("tax rate cannot be negative")
		}
		taxRate = *req.TaxRate
	}

	totals := invoicing.CalculateInvoiceTotals(itemInputs, taxRate)

	now := time.Now()
	invoiceID := uuid.NewString()
	items := make([]domain.InvoiceItem, len(totals.Items))
	for i, it := range totals.Items {
		items[i] = domain.InvoiceItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
			SortOrder:   it.SortOrder,
		}
	}

	invoice := domain.Invoice{
		InvoiceID:     invoiceID,
		TenantID:      tenantID,
		CustomerID:    req.CustomerID,
		InvoiceNumber: req.InvoiceNumber,
		Date:          req.Date,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
		Subtotal:      totals.Subtotal,
		TaxRate:       totals.TaxRate,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
		PaidAmount:    decimal.Zero,
		Status:        domain.InvoiceDraft,
		Items:         items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, items); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", "tenant_id", tenantID, "invoice_number", req.InvoiceNumber)
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created",
		"invoice_id", invoice.InvoiceID,
		"tenant_id", tenantID,
		"total", invoice.Total.String(),
	)
	return &invoice, nil
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, tenantID string, invoiceID string, status domain.InvoiceStatus, requestingUserID string) (*domain.Invoice, error) {
	if !status.IsValid() {
		return nil, apperrors.NewBadRequestError("unknown invoice status")
	}

	// Cancellation goes through the guarded path so the paid-amount check
	// runs under a row lock.
	if status == domain.InvoiceCancelled {
		return s.CancelInvoice(ctx, tenantID, invoiceID, requestingUserID)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	// The override is deliberately permissive; a mismatch with the paid
	// amount is worth a warning, not a rejection.
	if !invoicing.StatusConsistent(status, invoice.Total, invoice.PaidAmount) {
		s.LogWarn(ctx, "Invoice status set inconsistently with paid amount",
			"invoice_id", invoiceID,
			"status", string(status),
			"paid_amount", invoice.PaidAmount.String(),
			"total", invoice.Total.String(),
		)
	}

	now := time.Now()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, tenantID, invoiceID, status, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update invoice status", "invoice_id", invoiceID)
		return nil, err
	}

	invoice.Status = status
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = requestingUserID
	return invoice, nil
}

func (s *invoiceService) CancelInvoice(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	if err := s.invoiceRepo.CancelInvoice(ctx, tenantID, invoiceID, requestingUserID, time.Now()); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Invoice cancelled", "invoice_id", invoiceID, "tenant_id", tenantID)
	return s.invoiceRepo.FindInvoiceByID(ctx, tenantID, invoiceID)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceDraft {
		return apperrors.NewBadRequestError("only draft invoices can be deleted")
	}
	return s.invoiceRepo.MarkInvoiceDeleted(ctx, tenantID, invoiceID, time.Now(), requestingUserID)
}
