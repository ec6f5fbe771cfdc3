package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portssvc "github.com/ledgerline/invoicing_app/internal/core/ports/services"
	"github.com/ledgerline/invoicing_app/internal/dto"
	"github.com/ledgerline/invoicing_app/internal/handlers"
	"github.com/ledgerline/invoicing_app/internal/middleware"
	"github.com/ledgerline/invoicing_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, tenantID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListInvoicesResponse), args.Error(1)
}
func (m *MockInvoiceService) CreateInvoice(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) UpdateInvoiceStatus(ctx context.Context, tenantID string, invoiceID string, status domain.InvoiceStatus, requestingUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceID, status, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) CancelInvoice(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, tenantID string, invoiceID string, requestingUserID string) error {
	args := m.Called(ctx, tenantID, invoiceID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Test Suite ---
type InvoiceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockInvoiceService *MockInvoiceService
	jwtSecret          string
	tenantID           string
	userID             string
}

// generateTestToken creates a signed JWT carrying the suite's tenant and user IDs.
func (suite *InvoiceHandlerTestSuite) generateTestToken() string {
	claims := utils.TokenClaims{
		TenantID: suite.tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ivc-test",
			Subject:   suite.userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockInvoiceService = new(MockInvoiceService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterInvoiceRoutes(v1, suite.mockInvoiceService)
}

func (suite *InvoiceHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	customerID := uuid.NewString()
	reqBody := dto.CreateInvoiceRequest{
		CustomerID:    customerID,
		InvoiceNumber: "INV-2026-0001",
		Date:          time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("10.50")},
		},
	}

	expected := &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		TenantID:      suite.tenantID,
		CustomerID:    customerID,
		InvoiceNumber: reqBody.InvoiceNumber,
		Date:          reqBody.Date,
		DueDate:       reqBody.DueDate,
		Subtotal:      decimal.RequireFromString("21"),
		TaxRate:       decimal.RequireFromString("0.15"),
		TaxAmount:     decimal.RequireFromString("3.15"),
		Total:         decimal.RequireFromString("24.15"),
		PaidAmount:    decimal.Zero,
		Status:        domain.InvoiceDraft,
	}

	suite.mockInvoiceService.On("CreateInvoice",
		mock.Anything,
		suite.tenantID,
		mock.MatchedBy(func(r dto.CreateInvoiceRequest) bool {
			return r.InvoiceNumber == reqBody.InvoiceNumber && len(r.Items) == 1
		}),
		suite.userID,
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/invoices", reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.InvoiceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.InvoiceID, resp.InvoiceID)
	suite.Equal("DRAFT", resp.Status)
	suite.True(resp.Total.Equal(expected.Total), "total mismatch: %s", resp.Total)

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_MissingItemsRejected() {
	reqBody := map[string]any{
		"customerID":    uuid.NewString(),
		"invoiceNumber": "INV-2026-0002",
		"date":          "2026-01-10T00:00:00Z",
		"dueDate":       "2026-02-09T00:00:00Z",
		"items":         []any{},
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/invoices", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice")
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_UnknownCustomerNotFound() {
	reqBody := dto.CreateInvoiceRequest{
		CustomerID:    uuid.NewString(),
		InvoiceNumber: "INV-2026-0003",
		Date:          time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("50.00")},
		},
	}

	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, suite.tenantID, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("customer %s: %w", reqBody.CustomerID, apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/invoices", reqBody)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	invoiceID := uuid.NewString()
	suite.mockInvoiceService.On("GetInvoiceByID", mock.Anything, suite.tenantID, invoiceID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCancelInvoice_WithPaymentsRejected() {
	invoiceID := uuid.NewString()
	suite.mockInvoiceService.On("CancelInvoice", mock.Anything, suite.tenantID, invoiceID, suite.userID).
		Return(nil, fmt.Errorf("invoice has payments applied: %w", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/cancel", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestUpdateInvoiceStatus_UnknownStatusRejected() {
	invoiceID := uuid.NewString()
	reqBody := dto.UpdateInvoiceStatusRequest{Status: "SHIPPED"}

	w := suite.doRequest(http.MethodPatch, "/api/v1/invoices/"+invoiceID+"/status", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "UpdateInvoiceStatus")
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_MissingTokenUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "ListInvoices")
}

// --- Run Test Suite ---
func TestInvoiceHandler(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
