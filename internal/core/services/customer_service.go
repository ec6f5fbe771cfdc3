package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portsrepo "github.com/ledgerline/invoicing_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/invoicing_app/internal/core/ports/services"
	"github.com/ledgerline/invoicing_app/internal/dto"
	"github.com/ledgerline/invoicing_app/internal/utils/invoicing"
	"github.com/shopspring/decimal"
)

type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	paymentRepo  portsrepo.PaymentRepositoryFacade
}

// NewCustomerService creates the customer service.
func NewCustomerService(
	customerRepo portsrepo.CustomerRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) GetCustomerByID(ctx context.Context, tenantID string, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, tenantID, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, tenantID string, params dto.ListCustomersParams) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomersByTenant(ctx, tenantID, params.Limit, params.Offset, params.Search)
}

func (s *customerService) CreateCustomer(ctx context.Context, tenantID string, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	creditLimit := decimal.Zero
	if req.CreditLimit != nil {
		creditLimit = *req.CreditLimit
	}
	paymentTerms := 0
	if req.PaymentTerms != nil {
		paymentTerms = *req.PaymentTerms
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID:   uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		TaxNumber:    req.TaxNumber,
		CreditLimit:  creditLimit,
		PaymentTerms: paymentTerms,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", "tenant_id", tenantID)
		return nil, err
	}

	s.LogInfo(ctx, "Customer created", "customer_id", customer.CustomerID, "tenant_id", tenantID)
	return &customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, tenantID string, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.TaxNumber != nil {
		customer.TaxNumber = *req.TaxNumber
	}
	if req.CreditLimit != nil {
		customer.CreditLimit = *req.CreditLimit
	}
	if req.PaymentTerms != nil {
		customer.PaymentTerms = *req.PaymentTerms
	}
	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", "customer_id", customerID)
		return nil, err
	}

	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, tenantID string, customerID string, requestingUserID string) error {
	// Deleting an unknown customer is a 404, not a silent success.
	if _, err := s.customerRepo.FindCustomerByID(ctx, tenantID, customerID); err != nil {
		return err
	}
	return s.customerRepo.MarkCustomerDeleted(ctx, tenantID, customerID, time.Now(), requestingUserID)
}

func (s *customerService) GetCustomerStatement(ctx context.Context, tenantID string, customerID string) (*domain.CustomerStatement, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindInvoicesByCustomer(ctx, tenantID, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load invoices for statement", "customer_id", customerID)
		return nil, err
	}

	payments, err := s.paymentRepo.FindPaymentsByCustomer(ctx, tenantID, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for statement", "customer_id", customerID)
		return nil, err
	}

	// Cancelled invoices stay off the statement; their payments cannot exist.
	live := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status != domain.InvoiceCancelled {
			live = append(live, inv)
		}
	}

	ledger, summary := invoicing.BuildLedger(live, payments)

	return &domain.CustomerStatement{
		Customer: *customer,
		Summary:  summary,
		Ledger:   ledger,
	}, nil
}
