package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer mirrors the customers table.
type Customer struct {
	CustomerID   string          `json:"customerID"`
	TenantID     string          `json:"tenantID"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	TaxNumber    string          `json:"taxNumber"`
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	PaymentTerms int             `json:"paymentTerms"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
