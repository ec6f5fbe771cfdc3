package dto

import (
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Invoice DTOs ---

// CreateInvoiceItemRequest defines one line item on a new invoice.
type CreateInvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required,decimalpositive"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"decimalnonnegative"`
}

// CreateInvoiceRequest defines data for creating a new invoice. Totals are
// never accepted from the client; they are computed server-side from the items.
type CreateInvoiceRequest struct {
	CustomerID    string                     `json:"customerID" binding:"required"`
	InvoiceNumber string                     `json:"invoiceNumber" binding:"required"`
	Date          time.Time                  `json:"date" binding:"required"`
	DueDate       time.Time                  `json:"dueDate" binding:"required"`
	Notes         string                     `json:"notes"`
	TaxRate       *decimal.Decimal           `json:"taxRate,omitempty"`
	Items         []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceStatusRequest defines data for an administrative status change.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT SENT PARTIAL PAID OVERDUE CANCELLED"`
}

// InvoiceItemResponse defines data returned for an invoice line item.
type InvoiceItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	SortOrder   int             `json:"sortOrder"`
}

// InvoiceResponse defines data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string                `json:"invoiceID"`
	TenantID      string                `json:"tenantID"`
	CustomerID    string                `json:"customerID"`
	InvoiceNumber string                `json:"invoiceNumber"`
	Date          time.Time             `json:"date"`
	DueDate       time.Time             `json:"dueDate"`
	Notes         string                `json:"notes"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxRate       decimal.Decimal       `json:"taxRate"`
	TaxAmount     decimal.Decimal       `json:"taxAmount"`
	Total         decimal.Decimal       `json:"total"`
	PaidAmount    decimal.Decimal       `json:"paidAmount"`
	Status        string                `json:"status"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
}

// ToInvoiceItemResponse converts a domain.InvoiceItem to DTO.
func ToInvoiceItemResponse(it *domain.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ItemID:      it.ItemID,
		Description: it.Description,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		Amount:      it.Amount,
		SortOrder:   it.SortOrder,
	}
}

// ToInvoiceResponse converts a domain.Invoice to DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = ToInvoiceItemResponse(&it)
	}
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		TenantID:      inv.TenantID,
		CustomerID:    inv.CustomerID,
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.Date,
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		PaidAmount:    inv.PaidAmount,
		Status:        string(inv.Status),
		Items:         items,
		CreatedAt:     inv.CreatedAt,
		CreatedBy:     inv.CreatedBy,
		LastUpdatedAt: inv.LastUpdatedAt,
	}
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
	Status     *string `form:"status" binding:"omitempty,oneof=DRAFT SENT PARTIAL PAID OVERDUE CANCELLED"`
	CustomerID *string `form:"customerID"`
}

// ListInvoicesResponse wraps a page of invoices with the token for the next page.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListInvoicesResponse converts a slice of domain.Invoice to DTO.
func ToListInvoicesResponse(invs []domain.Invoice, nextToken *string) ListInvoicesResponse {
	list := make([]InvoiceResponse, len(invs))
	for i, inv := range invs {
		list[i] = ToInvoiceResponse(&inv)
	}
	return ListInvoicesResponse{Invoices: list, NextToken: nextToken}
}
