package services

import (
	"context"
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
)

// ReportingService defines operations for generating billing reports
type ReportingService interface {
	// AgingReport buckets the tenant's outstanding receivables by days past
	// due as of the given time.
	AgingReport(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.AgingReport, error)

	// DashboardSummary aggregates tenant-wide billing figures.
	DashboardSummary(ctx context.Context, tenantID string, userID string) (*domain.DashboardSummary, error)
}
