package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines operations for retrieving billing report data
type ReportingRepository interface {
	// GetAgingData retrieves the outstanding receivable invoices of a tenant
	// as bucketizer input rows.
	GetAgingData(ctx context.Context, tenantID string) ([]domain.AgingInput, error)

	// GetInvoiceStatusCounts retrieves the count of live invoices per status.
	GetInvoiceStatusCounts(ctx context.Context, tenantID string) ([]domain.StatusCount, error)

	// GetRevenueSeries retrieves paid revenue per day since the given date.
	GetRevenueSeries(ctx context.Context, tenantID string, since time.Time) ([]domain.RevenuePoint, error)

	// GetTopCustomers retrieves the highest-revenue customers of a tenant.
	GetTopCustomers(ctx context.Context, tenantID string, limit int) ([]domain.TopCustomer, error)

	// GetReceivableTotals retrieves the tenant-wide revenue (sum of paid
	// amounts) and outstanding balance (total - paid over receivable invoices).
	GetReceivableTotals(ctx context.Context, tenantID string) (revenue decimal.Decimal, outstanding decimal.Decimal, err error)

	// CountCustomers counts the live customers of a tenant.
	CountCustomers(ctx context.Context, tenantID string) (int64, error)
}
