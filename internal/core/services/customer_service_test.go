package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portssvc "github.com/ledgerline/invoicing_app/internal/core/ports/services"
	"github.com/ledgerline/invoicing_app/internal/core/services"
	"github.com/ledgerline/invoicing_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	mockInvoiceRepo  *MockInvoiceRepository
	mockPaymentRepo  *MockPaymentRepository
	service          portssvc.CustomerSvcFacade

	tenantID   string
	customerID string
	userID     string
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewCustomerService(suite.mockCustomerRepo, suite.mockInvoiceRepo, suite.mockPaymentRepo)

	suite.tenantID = uuid.NewString()
	suite.customerID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *CustomerServiceTestSuite) customer() *domain.Customer {
	return &domain.Customer{
		CustomerID: suite.customerID,
		TenantID:   suite.tenantID,
		Name:       "Acme Corp",
	}
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		Name:  "Acme Corp",
		Email: "billing@acme.example",
	}

	var savedCustomer domain.Customer
	suite.mockCustomerRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).
		Run(func(args mock.Arguments) {
			savedCustomer = args.Get(1).(domain.Customer)
		}).
		Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(customer)
	suite.Equal(suite.tenantID, savedCustomer.TenantID)
	suite.Equal("Acme Corp", savedCustomer.Name)
	suite.True(savedCustomer.CreditLimit.IsZero())
	suite.Equal(suite.userID, savedCustomer.CreatedBy)
}

func (suite *CustomerServiceTestSuite) TestGetCustomerStatement_MergesInvoicesAndPayments() {
	ctx := context.Background()

	invoices := []domain.Invoice{
		{
			InvoiceID:     uuid.NewString(),
			TenantID:      suite.tenantID,
			CustomerID:    suite.customerID,
			InvoiceNumber: "INV-001",
			Date:          time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			Total:         decimal.RequireFromString("100.00"),
			Status:        domain.InvoiceSent,
		},
		{
			InvoiceID:     uuid.NewString(),
			TenantID:      suite.tenantID,
			CustomerID:    suite.customerID,
			InvoiceNumber: "INV-002",
			Date:          time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
			Total:         decimal.RequireFromString("50.00"),
			Status:        domain.InvoiceCancelled,
		},
	}
	payments := []domain.Payment{
		{
			PaymentID:   uuid.NewString(),
			TenantID:    suite.tenantID,
			CustomerID:  suite.customerID,
			Amount:      decimal.RequireFromString("30.00"),
			PaymentDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			Reference:   "wire-1",
		},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.tenantID, suite.customerID).Return(suite.customer(), nil).Once()
	suite.mockInvoiceRepo.On("FindInvoicesByCustomer", ctx, suite.tenantID, suite.customerID).Return(invoices, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsByCustomer", ctx, suite.tenantID, suite.customerID).Return(payments, nil).Once()

	statement, err := suite.service.GetCustomerStatement(ctx, suite.tenantID, suite.customerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(statement)

	// The cancelled invoice stays off the ledger and the totals.
	suite.Len(statement.Ledger, 2)
	suite.True(statement.Summary.TotalInvoiced.Equal(decimal.RequireFromString("100.00")))
	suite.True(statement.Summary.TotalPaid.Equal(decimal.RequireFromString("30.00")))
	suite.True(statement.Summary.Balance.Equal(decimal.RequireFromString("70.00")))

	// Entries are newest first: the January 20 payment before the January 10 invoice.
	suite.Equal(domain.LedgerPayment, statement.Ledger[0].Type)
	suite.Equal(domain.LedgerInvoice, statement.Ledger[1].Type)
	suite.True(statement.Ledger[0].BalanceEffect.IsNegative())
}

func (suite *CustomerServiceTestSuite) TestGetCustomerStatement_CustomerNotFound() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.tenantID, suite.customerID).Return(nil, apperrors.ErrNotFound).Once()

	statement, err := suite.service.GetCustomerStatement(ctx, suite.tenantID, suite.customerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(statement)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoicesByCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_PartialUpdate() {
	ctx := context.Background()
	newPhone := "+1-555-0100"
	req := dto.UpdateCustomerRequest{Phone: &newPhone}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.tenantID, suite.customerID).Return(suite.customer(), nil).Once()

	var updated domain.Customer
	suite.mockCustomerRepo.On("UpdateCustomer", ctx, mock.AnythingOfType("domain.Customer")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Customer)
		}).
		Return(nil).Once()

	customer, err := suite.service.UpdateCustomer(ctx, suite.tenantID, suite.customerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(customer)
	suite.Equal(newPhone, updated.Phone)
	suite.Equal("Acme Corp", updated.Name, "untouched fields keep their values")
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
