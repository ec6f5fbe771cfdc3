package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment mirrors the payments table. Rows are insert-only.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	TenantID    string          `json:"tenantID"`
	CustomerID  string          `json:"customerID"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
