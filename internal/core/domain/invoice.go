package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePartial   InvoiceStatus = "PARTIAL"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// IsValid reports whether s is one of the known invoice statuses.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePartial, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// Receivable reports whether an invoice in this status may receive a payment.
// OVERDUE behaves like SENT/PARTIAL here.
func (s InvoiceStatus) Receivable() bool {
	return s != InvoiceCancelled
}

// InvoiceItem is a single line on an invoice. Items are created with the
// invoice and never edited afterwards; only the invoice status mutates.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"` // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`  // > 0
	UnitPrice   decimal.Decimal `json:"unitPrice"` // >= 0
	Amount      decimal.Decimal `json:"amount"`    // quantity * unitPrice, full precision
	SortOrder   int             `json:"sortOrder"` // Input order, preserved for display
}

// Invoice is a bill issued to a customer.
//
// Monetary invariants: subtotal is the unrounded sum of item amounts,
// taxAmount = round(subtotal*taxRate, 2, half-up), total =
// round(subtotal+taxAmount, 2, half-up), and 0 <= paidAmount <= total.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary Key (UUID)
	TenantID      string          `json:"tenantID"`
	CustomerID    string          `json:"customerID"`
	InvoiceNumber string          `json:"invoiceNumber"` // Unique per tenant among live rows
	Date          time.Time       `json:"date"`
	DueDate       time.Time       `json:"dueDate"`
	Notes         string          `json:"notes"`
	Subtotal      decimal.Decimal `json:"subtotal"` // Full precision
	TaxRate       decimal.Decimal `json:"taxRate"`  // Fraction, e.g. 0.15
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Status        InvoiceStatus   `json:"status"`
	Items         []InvoiceItem   `json:"items,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Outstanding returns total - paidAmount.
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.Total.Sub(i.PaidAmount)
}
