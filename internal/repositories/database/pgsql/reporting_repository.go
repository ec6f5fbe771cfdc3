package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portsrepo "github.com/ledgerline/invoicing_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetAgingData retrieves the outstanding receivable invoices of a tenant as
// bucketizer input rows. Cancelled and fully paid invoices carry no
// receivable, so they are filtered out here.
func (r *reportingRepository) GetAgingData(ctx context.Context, tenantID string) ([]domain.AgingInput, error) {
	query := `
		SELECT total, paid_amount, due_date
		FROM invoices
		WHERE tenant_id = $1
			AND deleted_at IS NULL
			AND status NOT IN ('CANCELLED', 'PAID', 'DRAFT')
			AND total > paid_amount
	`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error querying aging data: %w", err)
	}
	defer rows.Close()

	var result []domain.AgingInput
	for rows.Next() {
		var row domain.AgingInput
		if err := rows.Scan(&row.Total, &row.PaidAmount, &row.DueDate); err != nil {
			return nil, fmt.Errorf("error scanning aging row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aging rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.AgingInput{}, nil
	}

	return result, nil
}

// GetInvoiceStatusCounts retrieves the count of live invoices per status.
func (r *reportingRepository) GetInvoiceStatusCounts(ctx context.Context, tenantID string) ([]domain.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM invoices
		WHERE tenant_id = $1 AND deleted_at IS NULL
		GROUP BY status
	`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error querying invoice status counts: %w", err)
	}
	defer rows.Close()

	var result []domain.StatusCount
	for rows.Next() {
		var row domain.StatusCount
		var status string
		if err := rows.Scan(&status, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning status count row: %w", err)
		}
		row.Status = domain.InvoiceStatus(status)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status count rows: %w", err)
	}

	if result == nil {
		result = []domain.StatusCount{}
	}

	return result, nil
}

// GetRevenueSeries retrieves paid revenue per day since the given date.
// Revenue is attributed to the payment date, not the invoice date.
func (r *reportingRepository) GetRevenueSeries(ctx context.Context, tenantID string, since time.Time) ([]domain.RevenuePoint, error) {
	query := `
		SELECT date_trunc('day', payment_date) AS day, SUM(amount)
		FROM payments
		WHERE tenant_id = $1 AND deleted_at IS NULL AND payment_date >= $2
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.Pool.Query(ctx, query, tenantID, since)
	if err != nil {
		return nil, fmt.Errorf("error querying revenue series: %w", err)
	}
	defer rows.Close()

	var result []domain.RevenuePoint
	for rows.Next() {
		var row domain.RevenuePoint
		if err := rows.Scan(&row.Date, &row.Revenue); err != nil {
			return nil, fmt.Errorf("error scanning revenue row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue rows: %w", err)
	}

	if result == nil {
		result = []domain.RevenuePoint{}
	}

	return result, nil
}

// GetTopCustomers retrieves the highest-revenue customers of a tenant,
// measured by payments received.
func (r *reportingRepository) GetTopCustomers(ctx context.Context, tenantID string, limit int) ([]domain.TopCustomer, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT c.customer_id, c.name, COALESCE(SUM(p.amount), 0) AS revenue
		FROM customers c
		JOIN payments p ON p.customer_id = c.customer_id AND p.deleted_at IS NULL
		WHERE c.tenant_id = $1 AND c.deleted_at IS NULL
		GROUP BY c.customer_id, c.name
		ORDER BY revenue DESC
		LIMIT $2
	`

	rows, err := r.Pool.Query(ctx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top customers: %w", err)
	}
	defer rows.Close()

	var result []domain.TopCustomer
	for rows.Next() {
		var row domain.TopCustomer
		if err := rows.Scan(&row.CustomerID, &row.Name, &row.Revenue); err != nil {
			return nil, fmt.Errorf("error scanning top customer row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top customer rows: %w", err)
	}

	if result == nil {
		result = []domain.TopCustomer{}
	}

	return result, nil
}

// GetReceivableTotals retrieves tenant-wide revenue and outstanding balance.
func (r *reportingRepository) GetReceivableTotals(ctx context.Context, tenantID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(paid_amount), 0) AS revenue,
			COALESCE(SUM(CASE WHEN status NOT IN ('CANCELLED', 'DRAFT') THEN total - paid_amount ELSE 0 END), 0) AS outstanding
		FROM invoices
		WHERE tenant_id = $1 AND deleted_at IS NULL
	`

	var revenue, outstanding decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID).Scan(&revenue, &outstanding); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying receivable totals: %w", err)
	}

	return revenue, outstanding, nil
}

// CountCustomers counts the live customers of a tenant.
func (r *reportingRepository) CountCustomers(ctx context.Context, tenantID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM customers
		WHERE tenant_id = $1 AND deleted_at IS NULL
	`

	var count int64
	if err := r.Pool.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting customers: %w", err)
	}

	return count, nil
}
