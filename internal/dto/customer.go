package dto

import (
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Customer DTOs ---

// CreateCustomerRequest defines data for creating a new customer.
type CreateCustomerRequest struct {
	Name         string           `json:"name" binding:"required"`
	Email        string           `json:"email" binding:"omitempty,email"`
	Phone        string           `json:"phone"`
	Address      string           `json:"address"`
	TaxNumber    string           `json:"taxNumber"`
	CreditLimit  *decimal.Decimal `json:"creditLimit,omitempty"`
	PaymentTerms *int             `json:"paymentTerms,omitempty" binding:"omitempty,min=0"`
}

// UpdateCustomerRequest defines data for updating a customer. Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name         *string          `json:"name,omitempty"`
	Email        *string          `json:"email,omitempty" binding:"omitempty,email"`
	Phone        *string          `json:"phone,omitempty"`
	Address      *string          `json:"address,omitempty"`
	TaxNumber    *string          `json:"taxNumber,omitempty"`
	CreditLimit  *decimal.Decimal `json:"creditLimit,omitempty"`
	PaymentTerms *int             `json:"paymentTerms,omitempty" binding:"omitempty,min=0"`
}

// CustomerResponse defines data returned for a customer.
type CustomerResponse struct {
	CustomerID    string          `json:"customerID"`
	TenantID      string          `json:"tenantID"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	TaxNumber     string          `json:"taxNumber"`
	CreditLimit   decimal.Decimal `json:"creditLimit"`
	PaymentTerms  int             `json:"paymentTerms"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToCustomerResponse converts domain.Customer to DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		TenantID:      c.TenantID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		TaxNumber:     c.TaxNumber,
		CreditLimit:   c.CreditLimit,
		PaymentTerms:  c.PaymentTerms,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit  int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int     `form:"offset,default=0" binding:"omitempty,min=0"`
	Search *string `form:"search"`
}

// ListCustomersResponse wraps a list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// ToListCustomersResponse converts a slice of domain.Customer to DTO.
func ToListCustomersResponse(cs []domain.Customer) ListCustomersResponse {
	list := make([]CustomerResponse, len(cs))
	for i, c := range cs {
		list[i] = ToCustomerResponse(&c)
	}
	return ListCustomersResponse{Customers: list}
}

// CustomerStatementResponse is the full statement for one customer: summary
// totals plus the descending-dated ledger.
type CustomerStatementResponse struct {
	Customer CustomerResponse        `json:"customer"`
	Summary  domain.StatementSummary `json:"summary"`
	Ledger   []domain.LedgerEntry    `json:"ledger"`
}

// ToCustomerStatementResponse converts a domain.CustomerStatement to DTO.
func ToCustomerStatementResponse(s *domain.CustomerStatement) CustomerStatementResponse {
	return CustomerStatementResponse{
		Customer: ToCustomerResponse(&s.Customer),
		Summary:  s.Summary,
		Ledger:   s.Ledger,
	}
}
