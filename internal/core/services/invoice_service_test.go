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

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	var inv *domain.Invoice
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.Invoice)
	}
	return inv, args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, status *domain.InvoiceStatus, customerID *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken, status, customerID)
	var invs []domain.Invoice
	if args.Get(0) != nil {
		invs = args.Get(0).([]domain.Invoice)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return invs, token, args.Error(2)
}

func (m *MockInvoiceRepository) FindInvoicesByCustomer(ctx context.Context, tenantID string, customerID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, tenantID, customerID)
	var invs []domain.Invoice
	if args.Get(0) != nil {
		invs = args.Get(0).([]domain.Invoice)
	}
	return invs, args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	args := m.Called(ctx, invoice, items)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, tenantID string, invoiceID string, status domain.InvoiceStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, tenantID, invoiceID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CancelInvoice(ctx context.Context, tenantID string, invoiceID string, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, tenantID, invoiceID, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkInvoiceDeleted(ctx context.Context, tenantID string, invoiceID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, tenantID, invoiceID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, tenantID string, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, tenantID, customerID)
	var cust *domain.Customer
	if args.Get(0) != nil {
		cust = args.Get(0).(*domain.Customer)
	}
	return cust, args.Error(1)
}

func (m *MockCustomerRepository) ListCustomersByTenant(ctx context.Context, tenantID string, limit int, offset int, search *string) ([]domain.Customer, error) {
	args := m.Called(ctx, tenantID, limit, offset, search)
	var custs []domain.Customer
	if args.Get(0) != nil {
		custs = args.Get(0).([]domain.Customer)
	}
	return custs, args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) MarkCustomerDeleted(ctx context.Context, tenantID string, customerID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, tenantID, customerID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite ---

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.InvoiceSvcFacade

	tenantID   string
	customerID string
	userID     string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockCustomerRepo, decimal.NewFromFloat(0.15))

	suite.tenantID = uuid.NewString()
	suite.customerID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *InvoiceServiceTestSuite) customer() *domain.Customer {
	return &domain.Customer{
		CustomerID: suite.customerID,
		TenantID:   suite.tenantID,
		Name:       "Acme Corp",
	}
}

func (suite *InvoiceServiceTestSuite) createRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerID:    suite.customerID,
		InvoiceNumber: "INV-001",
		Date:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("10.50")},
			{Description: "Support", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("5.25")},
		},
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.tenantID, suite.customerID).Return(suite.customer(), nil).Once()

	var savedInvoice domain.Invoice
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).
		Run(func(args mock.Arguments) {
			savedInvoice = args.Get(1).(domain.Invoice)
		}).
		Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)

	// 2 * 10.50 + 1 * 5.25 = 26.25; tax at 15% = 3.9375 -> 3.94; total 30.19
	suite.True(savedInvoice.Subtotal.Equal(decimal.RequireFromString("26.25")), "subtotal was %s", savedInvoice.Subtotal)
	suite.True(savedInvoice.TaxAmount.Equal(decimal.RequireFromString("3.94")), "taxAmount was %s", savedInvoice.TaxAmount)
	suite.True(savedInvoice.Total.Equal(decimal.RequireFromString("30.19")), "total was %s", savedInvoice.Total)
	suite.True(savedInvoice.PaidAmount.IsZero())
	suite.Equal(domain.InvoiceDraft, savedInvoice.Status)
	suite.Len(savedInvoice.Items, 2)
	suite.Equal(0, savedInvoice.Items[0].SortOrder)
	suite.Equal(1, savedInvoice.Items[1].SortOrder)

	suite.mockCustomerRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_FullPrecisionAmounts() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Items = []dto.CreateInvoiceItemRequest{
		{Description: "Metered usage", Quantity: decimal.RequireFromString("0.3333"), UnitPrice: decimal.RequireFromString("10.1234")},
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.tenantID, suite.customerID).Return(suite.customer(), nil).Once()

	var savedInvoice domain.Invoice
	var savedItems []domain.InvoiceItem
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).
		Run(func(args mock.Arguments) {
			savedInvoice = args.Get(1).(domain.Invoice)
			savedItems = args.Get(2).([]domain.InvoiceItem)
		}).
		Return(nil).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(savedItems, 1)

	// The 8-decimal product reaches the repository unrounded; only the tax
	// and total are rounded to 2dp.
	exact := decimal.RequireFromString("3.37412922")
	suite.True(savedItems[0].Amount.Equal(exact), "item amount was %s", savedItems[0].Amount)
	suite.Equal(exact.String(), savedItems[0].Amount.String(), "item amount lost scale: %s", savedItems[0].Amount)
	suite.Equal(exact.String(), savedInvoice.Subtotal.String(), "subtotal lost scale: %s", savedInvoice.Subtotal)
	suite.True(savedInvoice.TaxAmount.Equal(decimal.RequireFromString("0.51")), "taxAmount was %s", savedInvoice.TaxAmount)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_CustomerNotFound() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.tenantID, suite.customerID).Return(nil, apperrors.ErrNotFound).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(invoice)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonPositiveQuantity() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Items[0].Quantity = decimal.Zero

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.tenantID, suite.customerID).Return(suite.customer(), nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.Nil(invoice)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ZeroTaxRateOverride() {
	ctx := context.Background()
	req := suite.createRequest()
	zero := decimal.Zero
	req.TaxRate = &zero

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.tenantID, suite.customerID).Return(suite.customer(), nil).Once()

	var savedInvoice domain.Invoice
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceItem")).
		Run(func(args mock.Arguments) {
			savedInvoice = args.Get(1).(domain.Invoice)
		}).
		Return(nil).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(savedInvoice.TaxAmount.IsZero())
	suite.True(savedInvoice.Total.Equal(decimal.RequireFromString("26.25")), "total was %s", savedInvoice.Total)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_PermissiveOverride() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	// PAID with nothing paid: allowed, only logged.
	existing := &domain.Invoice{
		InvoiceID:  invoiceID,
		TenantID:   suite.tenantID,
		CustomerID: suite.customerID,
		Total:      decimal.RequireFromString("100.00"),
		PaidAmount: decimal.Zero,
		Status:     domain.InvoiceSent,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.tenantID, invoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, suite.tenantID, invoiceID, domain.InvoicePaid, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	invoice, err := suite.service.UpdateInvoiceStatus(ctx, suite.tenantID, invoiceID, domain.InvoicePaid, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, invoice.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_CancelledUsesGuardedPath() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	cancelled := &domain.Invoice{
		InvoiceID: invoiceID,
		TenantID:  suite.tenantID,
		Status:    domain.InvoiceCancelled,
	}

	suite.mockInvoiceRepo.On("CancelInvoice", ctx, suite.tenantID, invoiceID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.tenantID, invoiceID).Return(cancelled, nil).Once()

	invoice, err := suite.service.UpdateInvoiceStatus(ctx, suite.tenantID, invoiceID, domain.InvoiceCancelled, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceCancelled, invoice.Status)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCancelInvoice_ConflictPropagates() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("CancelInvoice", ctx, suite.tenantID, invoiceID, suite.userID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrValidation).Once()

	invoice, err := suite.service.CancelInvoice(ctx, suite.tenantID, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(invoice)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_NonDraftRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	sent := &domain.Invoice{
		InvoiceID: invoiceID,
		TenantID:  suite.tenantID,
		Status:    domain.InvoiceSent,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.tenantID, invoiceID).Return(sent, nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.tenantID, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "MarkInvoiceDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_Draft() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	draft := &domain.Invoice{
		InvoiceID: invoiceID,
		TenantID:  suite.tenantID,
		Status:    domain.InvoiceDraft,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.tenantID, invoiceID).Return(draft, nil).Once()
	suite.mockInvoiceRepo.On("MarkInvoiceDeleted", ctx, suite.tenantID, invoiceID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.tenantID, invoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
