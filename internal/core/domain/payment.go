package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod indicates how a payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodCheck        PaymentMethod = "CHECK"
	MethodOther        PaymentMethod = "OTHER"
)

// IsValid reports whether m is one of the known payment methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCreditCard, MethodCheck, MethodOther:
		return true
	}
	return false
}

// Payment is money received from a customer. A payment may be applied to a
// specific invoice or stand alone as an unallocated payment. Payments are
// immutable once recorded.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	TenantID    string          `json:"tenantID"`
	CustomerID  string          `json:"customerID"`
	InvoiceID   *string         `json:"invoiceID,omitempty"` // Nullable
	Amount      decimal.Decimal `json:"amount"`              // > 0
	PaymentDate time.Time       `json:"paymentDate"`
	Method      PaymentMethod   `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
