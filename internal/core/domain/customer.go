package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a billable party belonging to one tenant.
type Customer struct {
	CustomerID   string          `json:"customerID"` // Primary Key (UUID)
	TenantID     string          `json:"tenantID"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	TaxNumber    string          `json:"taxNumber"`
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	PaymentTerms int             `json:"paymentTerms"` // Days until due
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
