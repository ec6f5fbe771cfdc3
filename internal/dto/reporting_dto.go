package dto

import (
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
)

// --- Reporting DTOs ---

// AgingReportResponse is the accounts-receivable aging report for a tenant.
type AgingReportResponse struct {
	AsOf    time.Time          `json:"asOf"`
	Buckets domain.AgingReport `json:"buckets"`
}

// ToAgingReportResponse pairs an aging report with its evaluation instant.
func ToAgingReportResponse(asOf time.Time, report *domain.AgingReport) AgingReportResponse {
	return AgingReportResponse{
		AsOf:    asOf,
		Buckets: *report,
	}
}

// DashboardResponse wraps the tenant dashboard summary.
type DashboardResponse struct {
	Summary domain.DashboardSummary `json:"summary"`
}

// ToDashboardResponse converts a domain.DashboardSummary to DTO.
func ToDashboardResponse(summary *domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{Summary: *summary}
}
