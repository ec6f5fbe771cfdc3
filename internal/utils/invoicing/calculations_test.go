package invoicing_test

import (
	"testing"

	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/utils/invoicing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateInvoiceTotals_MultipleItems(t *testing.T) {
	items := []invoicing.ItemInput{
		{Description: "Widgets", Quantity: dec("2"), UnitPrice: dec("100")},  // 200
		{Description: "Gadgets", Quantity: dec("1"), UnitPrice: dec("50.5")}, // 50.5
	}

	// subtotal = 250.5, tax (15%) = 37.575 -> 37.58, total = 288.08
	result := invoicing.CalculateInvoiceTotals(items, dec("0.15"))

	assert.True(t, result.Subtotal.Equal(dec("250.5")), "subtotal = %s", result.Subtotal)
	assert.True(t, result.TaxAmount.Equal(dec("37.58")), "taxAmount = %s", result.TaxAmount)
	assert.True(t, result.Total.Equal(dec("288.08")), "total = %s", result.Total)
	assert.True(t, result.TaxRate.Equal(dec("0.15")))
}

func TestCalculateInvoiceTotals_ZeroItems(t *testing.T) {
	result := invoicing.CalculateInvoiceTotals(nil, invoicing.DefaultTaxRate)

	assert.True(t, result.Subtotal.IsZero())
	assert.True(t, result.TaxAmount.IsZero())
	assert.True(t, result.Total.IsZero())
	assert.Empty(t, result.Items)
}

func TestCalculateInvoiceTotals_HighPrecision(t *testing.T) {
	items := []invoicing.ItemInput{
		{Description: "Fractional", Quantity: dec("0.3333"), UnitPrice: dec("10.1234")},
	}

	// 0.3333 * 10.1234 = 3.37412922 kept unrounded;
	// tax = 0.506119383 -> 0.51
	result := invoicing.CalculateInvoiceTotals(items, dec("0.15"))

	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].Amount.Equal(dec("3.37412922")), "amount = %s", result.Items[0].Amount)
	assert.True(t, result.Subtotal.Equal(dec("3.37412922")))
	assert.True(t, result.TaxAmount.Equal(dec("0.51")), "taxAmount = %s", result.TaxAmount)
	assert.True(t, result.Total.Equal(dec("3.88")), "total = %s", result.Total)
}

func TestCalculateInvoiceTotals_SubtotalMatchesItemSum(t *testing.T) {
	items := []invoicing.ItemInput{
		{Description: "a", Quantity: dec("0.1"), UnitPrice: dec("0.2")},
		{Description: "b", Quantity: dec("3"), UnitPrice: dec("0.333")},
		{Description: "c", Quantity: dec("7.77"), UnitPrice: dec("12.345")},
		{Description: "d", Quantity: dec("1000000"), UnitPrice: dec("0.0001")},
	}

	result := invoicing.CalculateInvoiceTotals(items, dec("0.15"))

	// Re-deriving the subtotal from the persisted item amounts must reproduce
	// it exactly; no precision is lost mid-calculation.
	sum := decimal.Zero
	for _, item := range result.Items {
		sum = sum.Add(item.Amount)
	}
	assert.True(t, result.Subtotal.Equal(sum), "subtotal %s != item sum %s", result.Subtotal, sum)
}

func TestCalculateInvoiceTotals_SortOrderPreservesInput(t *testing.T) {
	items := []invoicing.ItemInput{
		{Description: "first", Quantity: dec("1"), UnitPrice: dec("1")},
		{Description: "second", Quantity: dec("1"), UnitPrice: dec("2")},
		{Description: "third", Quantity: dec("1"), UnitPrice: dec("3")},
	}

	result := invoicing.CalculateInvoiceTotals(items, dec("0.15"))

	require.Len(t, result.Items, 3)
	for i, item := range result.Items {
		assert.Equal(t, i, item.SortOrder)
		assert.Equal(t, items[i].Description, item.Description)
	}
}

func TestValidateItems(t *testing.T) {
	testCases := []struct {
		name    string
		items   []invoicing.ItemInput
		wantErr error
	}{
		{
			name:    "empty",
			items:   nil,
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "zero quantity",
			items: []invoicing.ItemInput{
				{Description: "x", Quantity: dec("0"), UnitPrice: dec("10")},
			},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name: "negative quantity",
			items: []invoicing.ItemInput{
				{Description: "x", Quantity: dec("-1"), UnitPrice: dec("10")},
			},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name: "negative unit price",
			items: []invoicing.ItemInput{
				{Description: "x", Quantity: dec("1"), UnitPrice: dec("-0.01")},
			},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name: "zero unit price is allowed",
			items: []invoicing.ItemInput{
				{Description: "freebie", Quantity: dec("1"), UnitPrice: dec("0")},
			},
			wantErr: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := invoicing.ValidateItems(tc.items)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
