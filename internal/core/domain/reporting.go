package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType distinguishes the two kinds of statement entries.
type LedgerEntryType string

const (
	LedgerInvoice LedgerEntryType = "INVOICE"
	LedgerPayment LedgerEntryType = "PAYMENT"
)

// LedgerEntry is one row of a customer statement: an invoice increases the
// customer's balance, a payment decreases it.
type LedgerEntry struct {
	Type          LedgerEntryType `json:"type"`
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Reference     string          `json:"reference"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceEffect decimal.Decimal `json:"balanceEffect"` // +amount for invoices, -amount for payments
}

// StatementSummary carries the statement-level totals.
type StatementSummary struct {
	TotalInvoiced decimal.Decimal `json:"totalInvoiced"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	Balance       decimal.Decimal `json:"balance"`
}

// CustomerStatement is the time-ordered ledger for one customer.
type CustomerStatement struct {
	Customer Customer         `json:"customer"`
	Summary  StatementSummary `json:"summary"`
	Ledger   []LedgerEntry    `json:"ledger"`
}

// AgingBucket labels for the aging report, in evaluation order.
const (
	BucketCurrent = "current"
	Bucket1To30   = "1-30"
	Bucket31To60  = "31-60"
	Bucket61To90  = "61-90"
	Bucket90Plus  = "90+"
)

// AgingReport sums outstanding balances per days-past-due bucket.
// All five buckets are always present, zero when empty.
type AgingReport struct {
	Current    decimal.Decimal `json:"current"`
	Days1To30  decimal.Decimal `json:"1-30"`
	Days31To60 decimal.Decimal `json:"31-60"`
	Days61To90 decimal.Decimal `json:"61-90"`
	Days90Plus decimal.Decimal `json:"90+"`
}

// AgingInput is the per-invoice slice the bucketizer consumes.
type AgingInput struct {
	Total      decimal.Decimal
	PaidAmount decimal.Decimal
	DueDate    time.Time
}

// StatusCount is one row of the dashboard invoice-status breakdown.
type StatusCount struct {
	Status InvoiceStatus `json:"status"`
	Count  int64         `json:"count"`
}

// TopCustomer is one row of the dashboard top-customers-by-revenue list.
type TopCustomer struct {
	CustomerID string          `json:"customerID"`
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// RevenuePoint is one day of the dashboard revenue series.
type RevenuePoint struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardSummary aggregates tenant-wide billing figures for display.
type DashboardSummary struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TotalCustomers   int64           `json:"totalCustomers"`
	ActiveInvoices   int64           `json:"activeInvoices"`
	InvoiceStats     []StatusCount   `json:"invoiceStats"`
	RevenueChart     []RevenuePoint  `json:"revenueChart"`
	TopCustomers     []TopCustomer   `json:"topCustomers"`
}
