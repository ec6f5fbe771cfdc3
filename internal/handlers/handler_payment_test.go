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

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) GetPaymentByID(ctx context.Context, tenantID string, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentService) ListPayments(ctx context.Context, tenantID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPaymentsResponse), args.Error(1)
}
func (m *MockPaymentService) CreatePayment(ctx context.Context, tenantID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, *domain.Invoice, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	var payment *domain.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.Payment)
	}
	var invoice *domain.Invoice
	if args.Get(1) != nil {
		invoice = args.Get(1).(*domain.Invoice)
	}
	return payment, invoice, args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Test Suite ---
type PaymentHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPaymentService *MockPaymentService
	jwtSecret          string
	tenantID           string
	userID             string
}

func (suite *PaymentHandlerTestSuite) generateTestToken() string {
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

func (suite *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPaymentService = new(MockPaymentService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPaymentRoutes(v1, suite.mockPaymentService)
}

func (suite *PaymentHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
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

func (suite *PaymentHandlerTestSuite) TestCreatePayment_AppliedToInvoice() {
	customerID := uuid.NewString()
	invoiceID := uuid.NewString()
	reqBody := dto.CreatePaymentRequest{
		CustomerID:  customerID,
		InvoiceID:   &invoiceID,
		Amount:      decimal.RequireFromString("40.00"),
		PaymentDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Method:      "BANK_TRANSFER",
	}

	payment := &domain.Payment{
		PaymentID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		CustomerID:  customerID,
		InvoiceID:   &invoiceID,
		Amount:      reqBody.Amount,
		PaymentDate: reqBody.PaymentDate,
		Method:      domain.MethodBankTransfer,
	}
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		TenantID:   suite.tenantID,
		CustomerID: customerID,
		Total:      decimal.RequireFromString("100.00"),
		PaidAmount: decimal.RequireFromString("40.00"),
		Status:     domain.InvoicePartial,
	}

	suite.mockPaymentService.On("CreatePayment",
		mock.Anything,
		suite.tenantID,
		mock.MatchedBy(func(r dto.CreatePaymentRequest) bool {
			return r.CustomerID == customerID && r.InvoiceID != nil && *r.InvoiceID == invoiceID
		}),
		suite.userID,
	).Return(payment, invoice, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/payments", reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.CreatePaymentResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(payment.PaymentID, resp.Payment.PaymentID)
	suite.Require().NotNil(resp.Invoice)
	suite.Equal("PARTIAL", resp.Invoice.Status)

	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestCreatePayment_UnknownInvoiceNotFound() {
	invoiceID := uuid.NewString()
	reqBody := dto.CreatePaymentRequest{
		CustomerID:  uuid.NewString(),
		InvoiceID:   &invoiceID,
		Amount:      decimal.RequireFromString("10.00"),
		PaymentDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Method:      "CASH",
	}

	suite.mockPaymentService.On("CreatePayment", mock.Anything, suite.tenantID, mock.Anything, suite.userID).
		Return(nil, nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/payments", reqBody)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestCreatePayment_NonPositiveAmountRejected() {
	reqBody := map[string]any{
		"customerID":  uuid.NewString(),
		"amount":      "0",
		"paymentDate": "2026-02-01T00:00:00Z",
		"method":      "CASH",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/payments", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "CreatePayment")
}

func (suite *PaymentHandlerTestSuite) TestGetPayment_NotFound() {
	paymentID := uuid.NewString()
	suite.mockPaymentService.On("GetPaymentByID", mock.Anything, suite.tenantID, paymentID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/payments/"+paymentID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPaymentService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}
