package services

import (
	"context"
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portsrepo "github.com/ledgerline/invoicing_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/invoicing_app/internal/core/ports/services"
	"github.com/ledgerline/invoicing_app/internal/utils/invoicing"
	"github.com/shopspring/decimal"
)

// revenueChartDays is the window of the dashboard's daily revenue series.
const revenueChartDays = 30

// topCustomersLimit caps the dashboard's top-customers list.
const topCustomersLimit = 5

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// AgingReport buckets outstanding receivables by days past due. The repository
// supplies the open invoice slices; the bucketizer itself is pure so the same
// asOf always yields the same report.
func (s *reportingService) AgingReport(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.AgingReport, error) {
	inputs, err := s.reportingRepo.GetAgingData(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load aging data", "tenant_id", tenantID)
		return nil, err
	}

	report := invoicing.BuildAgingReport(inputs, asOf)

	s.LogDebug(ctx, "Aging report built",
		"tenant_id", tenantID,
		"open_invoices", len(inputs),
		"as_of", asOf.Format(time.RFC3339),
	)
	return &report, nil
}

func (s *reportingService) DashboardSummary(ctx context.Context, tenantID string, userID string) (*domain.DashboardSummary, error) {
	revenue, outstanding, err := s.reportingRepo.GetReceivableTotals(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load receivable totals", "tenant_id", tenantID)
		return nil, err
	}

	statusCounts, err := s.reportingRepo.GetInvoiceStatusCounts(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load invoice status counts", "tenant_id", tenantID)
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(revenueChartDays - 1))
	revenueSeries, err := s.reportingRepo.GetRevenueSeries(ctx, tenantID, since)
	if err != nil {
		s.LogError(ctx, err, "Failed to load revenue series", "tenant_id", tenantID)
		return nil, err
	}
	revenueChart := fillRevenueSeries(revenueSeries, since, revenueChartDays)

	topCustomers, err := s.reportingRepo.GetTopCustomers(ctx, tenantID, topCustomersLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load top customers", "tenant_id", tenantID)
		return nil, err
	}

	customerCount, err := s.reportingRepo.CountCustomers(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count customers", "tenant_id", tenantID)
		return nil, err
	}

	var activeInvoices int64
	for _, sc := range statusCounts {
		switch sc.Status {
		case domain.InvoiceSent, domain.InvoicePartial, domain.InvoiceOverdue:
			activeInvoices += sc.Count
		}
	}

	return &domain.DashboardSummary{
		TotalRevenue:     revenue,
		TotalOutstanding: outstanding,
		TotalCustomers:   customerCount,
		ActiveInvoices:   activeInvoices,
		InvoiceStats:     statusCounts,
		RevenueChart:     revenueChart,
		TopCustomers:     topCustomers,
	}, nil
}

// fillRevenueSeries expands a sparse per-day revenue series into one point per
// day over the window, zero for days without payments. The chart renders a
// continuous x-axis, so gaps must be explicit.
func fillRevenueSeries(series []domain.RevenuePoint, since time.Time, days int) []domain.RevenuePoint {
	byDay := make(map[string]decimal.Decimal, len(series))
	for _, p := range series {
		key := p.Date.UTC().Format("2006-01-02")
		byDay[key] = byDay[key].Add(p.Revenue)
	}

	filled := make([]domain.RevenuePoint, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i)
		revenue, ok := byDay[day.Format("2006-01-02")]
		if !ok {
			revenue = decimal.Zero
		}
		filled = append(filled, domain.RevenuePoint{Date: day, Revenue: revenue})
	}
	return filled
}
