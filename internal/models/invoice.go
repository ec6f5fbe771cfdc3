package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus mirrors the invoice status enum column.
type InvoiceStatus string

// Invoice mirrors the invoices table. Note: subtotal is stored at full
// computed precision; tax_amount and total are rounded to 2 decimals.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	TenantID      string          `json:"tenantID"`
	CustomerID    string          `json:"customerID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          time.Time       `json:"date"`
	DueDate       time.Time       `json:"dueDate"`
	Notes         string          `json:"notes"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Status        InvoiceStatus   `json:"status"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// InvoiceItem mirrors the invoice_items table. Items are insert-only.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	SortOrder   int             `json:"sortOrder"`
}
