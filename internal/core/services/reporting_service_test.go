package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portssvc "github.com/ledgerline/invoicing_app/internal/core/ports/services"
	"github.com/ledgerline/invoicing_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetAgingData(ctx context.Context, tenantID string) ([]domain.AgingInput, error) {
	args := m.Called(ctx, tenantID)
	var inputs []domain.AgingInput
	if args.Get(0) != nil {
		inputs = args.Get(0).([]domain.AgingInput)
	}
	return inputs, args.Error(1)
}

func (m *MockReportingRepository) GetInvoiceStatusCounts(ctx context.Context, tenantID string) ([]domain.StatusCount, error) {
	args := m.Called(ctx, tenantID)
	var counts []domain.StatusCount
	if args.Get(0) != nil {
		counts = args.Get(0).([]domain.StatusCount)
	}
	return counts, args.Error(1)
}

func (m *MockReportingRepository) GetRevenueSeries(ctx context.Context, tenantID string, since time.Time) ([]domain.RevenuePoint, error) {
	args := m.Called(ctx, tenantID, since)
	var points []domain.RevenuePoint
	if args.Get(0) != nil {
		points = args.Get(0).([]domain.RevenuePoint)
	}
	return points, args.Error(1)
}

func (m *MockReportingRepository) GetTopCustomers(ctx context.Context, tenantID string, limit int) ([]domain.TopCustomer, error) {
	args := m.Called(ctx, tenantID, limit)
	var customers []domain.TopCustomer
	if args.Get(0) != nil {
		customers = args.Get(0).([]domain.TopCustomer)
	}
	return customers, args.Error(1)
}

func (m *MockReportingRepository) GetReceivableTotals(ctx context.Context, tenantID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) CountCustomers(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingService

	tenantID string
	userID   string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) TestAgingReport_BucketsByDaysPastDue() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	inputs := []domain.AgingInput{
		// Due in the future: current.
		{Total: decimal.RequireFromString("100.00"), PaidAmount: decimal.Zero, DueDate: asOf.AddDate(0, 0, 10)},
		// 10 days past due: 1-30.
		{Total: decimal.RequireFromString("80.00"), PaidAmount: decimal.RequireFromString("30.00"), DueDate: asOf.AddDate(0, 0, -10)},
		// 45 days past due: 31-60.
		{Total: decimal.RequireFromString("60.00"), PaidAmount: decimal.Zero, DueDate: asOf.AddDate(0, 0, -45)},
		// 120 days past due: 90+.
		{Total: decimal.RequireFromString("40.00"), PaidAmount: decimal.Zero, DueDate: asOf.AddDate(0, 0, -120)},
	}

	suite.mockReportingRepo.On("GetAgingData", ctx, suite.tenantID).Return(inputs, nil).Once()

	report, err := suite.service.AgingReport(ctx, suite.tenantID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.Current.Equal(decimal.RequireFromString("100.00")), "current was %s", report.Current)
	suite.True(report.Days1To30.Equal(decimal.RequireFromString("50.00")), "1-30 was %s", report.Days1To30)
	suite.True(report.Days31To60.Equal(decimal.RequireFromString("60.00")), "31-60 was %s", report.Days31To60)
	suite.True(report.Days61To90.IsZero())
	suite.True(report.Days90Plus.Equal(decimal.RequireFromString("40.00")), "90+ was %s", report.Days90Plus)
}

func (suite *ReportingServiceTestSuite) TestAgingReport_EmptyTenant() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetAgingData", ctx, suite.tenantID).Return([]domain.AgingInput{}, nil).Once()

	report, err := suite.service.AgingReport(ctx, suite.tenantID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.Current.IsZero())
	suite.True(report.Days90Plus.IsZero())
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_Composes() {
	ctx := context.Background()

	statusCounts := []domain.StatusCount{
		{Status: domain.InvoiceDraft, Count: 4},
		{Status: domain.InvoiceSent, Count: 2},
		{Status: domain.InvoicePartial, Count: 1},
		{Status: domain.InvoicePaid, Count: 7},
		{Status: domain.InvoiceOverdue, Count: 3},
	}
	// Only one day in the window had payments; the chart must still cover
	// every day.
	paidDay := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -3)
	revenueSeries := []domain.RevenuePoint{
		{Date: paidDay, Revenue: decimal.RequireFromString("120.00")},
	}
	topCustomers := []domain.TopCustomer{
		{CustomerID: uuid.NewString(), Name: "Acme Corp", Revenue: decimal.RequireFromString("500.00")},
	}

	suite.mockReportingRepo.On("GetReceivableTotals", ctx, suite.tenantID).
		Return(decimal.RequireFromString("900.00"), decimal.RequireFromString("250.00"), nil).Once()
	suite.mockReportingRepo.On("GetInvoiceStatusCounts", ctx, suite.tenantID).Return(statusCounts, nil).Once()
	suite.mockReportingRepo.On("GetRevenueSeries", ctx, suite.tenantID, mock.AnythingOfType("time.Time")).Return(revenueSeries, nil).Once()
	suite.mockReportingRepo.On("GetTopCustomers", ctx, suite.tenantID, 5).Return(topCustomers, nil).Once()
	suite.mockReportingRepo.On("CountCustomers", ctx, suite.tenantID).Return(int64(12), nil).Once()

	summary, err := suite.service.DashboardSummary(ctx, suite.tenantID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.True(summary.TotalRevenue.Equal(decimal.RequireFromString("900.00")))
	suite.True(summary.TotalOutstanding.Equal(decimal.RequireFromString("250.00")))
	suite.Equal(int64(12), summary.TotalCustomers)
	// SENT + PARTIAL + OVERDUE; drafts and paid invoices are not active.
	suite.Equal(int64(6), summary.ActiveInvoices)
	suite.Len(summary.TopCustomers, 1)

	// 30 consecutive daily points, zero-filled where no payments landed.
	suite.Require().Len(summary.RevenueChart, 30)
	var nonZero int
	for i, p := range summary.RevenueChart {
		if i > 0 {
			prev := summary.RevenueChart[i-1].Date
			suite.True(p.Date.Equal(prev.AddDate(0, 0, 1)), "gap between %s and %s", prev, p.Date)
		}
		if !p.Revenue.IsZero() {
			nonZero++
			suite.True(p.Date.Equal(paidDay), "revenue on unexpected day %s", p.Date)
			suite.True(p.Revenue.Equal(decimal.RequireFromString("120.00")))
		}
	}
	suite.Equal(1, nonZero)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
