package invoicing

import (
	"math"
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
)

// DaysPastDue returns how many days past due an invoice is at asOf, rounding
// partial days up. Zero or negative means not yet due.
func DaysPastDue(dueDate, asOf time.Time) int {
	diff := asOf.Sub(dueDate)
	return int(math.Ceil(diff.Hours() / 24))
}

// BuildAgingReport classifies each open invoice's outstanding balance into a
// days-past-due bucket relative to asOf. Callers pass the open invoices
// (SENT/PARTIAL/OVERDUE) and a fixed asOf instant so the result is
// deterministic and testable; the wall clock is never read here.
func BuildAgingReport(invoices []domain.AgingInput, asOf time.Time) domain.AgingReport {
	var report domain.AgingReport

	for _, inv := range invoices {
		outstanding := inv.Total.Sub(inv.PaidAmount)
		days := DaysPastDue(inv.DueDate, asOf)

		switch {
		case days <= 0:
			report.Current = report.Current.Add(outstanding)
		case days <= 30:
			report.Days1To30 = report.Days1To30.Add(outstanding)
		case days <= 60:
			report.Days31To60 = report.Days31To60.Add(outstanding)
		case days <= 90:
			report.Days61To90 = report.Days61To90.Add(outstanding)
		default:
			report.Days90Plus = report.Days90Plus.Add(outstanding)
		}
	}

	return report
}
