package dto

import (
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Payment DTOs ---

// CreatePaymentRequest defines data for recording a payment. If invoiceID is
// set the payment is applied to that invoice atomically.
type CreatePaymentRequest struct {
	CustomerID  string          `json:"customerID" binding:"required"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	Amount      decimal.Decimal `json:"amount" binding:"required,decimalpositive"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CREDIT_CARD CHECK OTHER"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
}

// PaymentResponse defines data returned for a payment.
type PaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	TenantID    string          `json:"tenantID"`
	CustomerID  string          `json:"customerID"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		TenantID:    p.TenantID,
		CustomerID:  p.CustomerID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      string(p.Method),
		Reference:   p.Reference,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		CreatedBy:   p.CreatedBy,
	}
}

// CreatePaymentResponse returns the recorded payment and, when the payment
// was applied to an invoice, the invoice's post-application state.
type CreatePaymentResponse struct {
	Payment PaymentResponse  `json:"payment"`
	Invoice *InvoiceResponse `json:"invoice,omitempty"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
	CustomerID *string `form:"customerID"`
	InvoiceID  *string `form:"invoiceID"`
}

// ListPaymentsResponse wraps a page of payments with the token for the next page.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListPaymentsResponse converts a slice of domain.Payment to DTO.
func ToListPaymentsResponse(ps []domain.Payment, nextToken *string) ListPaymentsResponse {
	list := make([]PaymentResponse, len(ps))
	for i, p := range ps {
		list[i] = ToPaymentResponse(&p)
	}
	return ListPaymentsResponse{Payments: list, NextToken: nextToken}
}
