// Package invoicing holds the pure monetary calculations shared by services
// and repositories: invoice totals, payment application, statement ledgers
// and aging buckets. Nothing here touches the database or the clock.
package invoicing

import (
	"fmt"

	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CurrencyScale is the number of fractional digits monetary amounts carry at
// rest. Intermediate results keep full precision; only the final tax/total
// rounding step truncates.
const CurrencyScale = 2

// DefaultTaxRate is applied when the caller does not supply a rate.
var DefaultTaxRate = decimal.NewFromFloat(0.15)

// ItemInput is one invoice line as supplied by the caller.
type ItemInput struct {
	Description string
	Quantity    decimal.Decimal // > 0
	UnitPrice   decimal.Decimal // >= 0
}

// ItemResult is one computed invoice line.
type ItemResult struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // quantity * unitPrice, unrounded
	SortOrder   int
}

// TotalsResult is the output of CalculateInvoiceTotals.
type TotalsResult struct {
	Items     []ItemResult
	Subtotal  decimal.Decimal // Unrounded sum of item amounts
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal // Rounded to CurrencyScale, half-up
	Total     decimal.Decimal // Rounded to CurrencyScale, half-up
}

// ValidateItems checks the structural rules for invoice lines: at least one
// item, positive quantity, non-negative unit price. Violations wrap
// apperrors.ErrValidation (empty input) or apperrors.ErrInvalidAmount
// (bad quantity/price) so handlers can map them to client errors.
func ValidateItems(items []ItemInput) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}
	for i, item := range items {
		if !item.Quantity.IsPositive() {
			return fmt.Errorf("%w: quantity must be positive for item %d", apperrors.ErrInvalidAmount, i)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: unit price cannot be negative for item %d", apperrors.ErrInvalidAmount, i)
		}
	}
	return nil
}

// CalculateInvoiceTotals maps ordered invoice lines and a tax rate to the
// persisted invoice amounts. Item amounts and the subtotal are computed at
// full precision; taxAmount and total are the only rounded figures.
//
// Given an empty item slice the result is all zeros; rejecting empty input
// is the caller's concern (see ValidateItems).
func CalculateInvoiceTotals(items []ItemInput, taxRate decimal.Decimal) TotalsResult {
	subtotal := decimal.Zero

	results := make([]ItemResult, len(items))
	for i, item := range items {
		amount := item.Quantity.Mul(item.UnitPrice)
		subtotal = subtotal.Add(amount)
		results[i] = ItemResult{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      amount,
			SortOrder:   i,
		}
	}

	taxAmount := subtotal.Mul(taxRate).Round(CurrencyScale)
	// Total is the unrounded subtotal plus the rounded tax, rounded again.
	total := subtotal.Add(taxAmount).Round(CurrencyScale)

	return TotalsResult{
		Items:     results,
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: taxAmount,
		Total:     total,
	}
}
