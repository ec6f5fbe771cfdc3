package invoicing

import (
	"sort"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildLedger merges one customer's invoices and standalone payments into a
// statement: one +total entry per invoice dated by invoice date, one -amount
// entry per payment dated by payment date, sorted descending by date. Ties
// keep stable input order, invoices ahead of payments.
//
// This is a read-side projection over already persisted rows; it never
// mutates state and may be recomputed on every request.
func BuildLedger(invoices []domain.Invoice, payments []domain.Payment) ([]domain.LedgerEntry, domain.StatementSummary) {
	entries := make([]domain.LedgerEntry, 0, len(invoices)+len(payments))

	totalInvoiced := decimal.Zero
	for _, inv := range invoices {
		totalInvoiced = totalInvoiced.Add(inv.Total)
		entries = append(entries, domain.LedgerEntry{
			Type:          domain.LedgerInvoice,
			ID:            inv.InvoiceID,
			Date:          inv.Date,
			Reference:     inv.InvoiceNumber,
			Amount:        inv.Total,
			BalanceEffect: inv.Total,
		})
	}

	totalPaid := decimal.Zero
	for _, pmt := range payments {
		totalPaid = totalPaid.Add(pmt.Amount)
		reference := pmt.Reference
		if reference == "" {
			reference = "Payment"
		}
		entries = append(entries, domain.LedgerEntry{
			Type:          domain.LedgerPayment,
			ID:            pmt.PaymentID,
			Date:          pmt.PaymentDate,
			Reference:     reference,
			Amount:        pmt.Amount,
			BalanceEffect: pmt.Amount.Neg(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	summary := domain.StatementSummary{
		TotalInvoiced: totalInvoiced,
		TotalPaid:     totalPaid,
		Balance:       totalInvoiced.Sub(totalPaid),
	}
	return entries, summary
}
