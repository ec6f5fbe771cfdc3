package invoicing_test

import (
	"testing"

	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/ledgerline/invoicing_app/internal/utils/invoicing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPayment_FullPaymentSetsPaid(t *testing.T) {
	result, err := invoicing.ApplyPayment(domain.InvoiceSent, dec("288.08"), dec("0"), dec("288.08"))

	require.NoError(t, err)
	assert.True(t, result.NewPaidAmount.Equal(dec("288.08")))
	assert.Equal(t, domain.InvoicePaid, result.NewStatus)
}

func TestApplyPayment_OverpaymentSetsPaid(t *testing.T) {
	result, err := invoicing.ApplyPayment(domain.InvoicePartial, dec("100"), dec("60"), dec("50"))

	require.NoError(t, err)
	assert.True(t, result.NewPaidAmount.Equal(dec("110")))
	assert.Equal(t, domain.InvoicePaid, result.NewStatus)
}

func TestApplyPayment_PartialPaymentSetsPartial(t *testing.T) {
	result, err := invoicing.ApplyPayment(domain.InvoiceSent, dec("100"), dec("0"), dec("40"))

	require.NoError(t, err)
	assert.True(t, result.NewPaidAmount.Equal(dec("40")))
	assert.Equal(t, domain.InvoicePartial, result.NewStatus)
}

func TestApplyPayment_OverdueCanReceivePayments(t *testing.T) {
	result, err := invoicing.ApplyPayment(domain.InvoiceOverdue, dec("100"), dec("0"), dec("100"))

	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, result.NewStatus)
}

func TestApplyPayment_CancelledInvoiceRejected(t *testing.T) {
	_, err := invoicing.ApplyPayment(domain.InvoiceCancelled, dec("100"), dec("0"), dec("10"))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestApplyPayment_NonPositiveAmountRejected(t *testing.T) {
	_, err := invoicing.ApplyPayment(domain.InvoiceSent, dec("100"), dec("0"), dec("0"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = invoicing.ApplyPayment(domain.InvoiceSent, dec("100"), dec("0"), dec("-5"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestApplyPayment_SequentialApplicationsAccumulate(t *testing.T) {
	// Two payments a and b applied one after the other (as the row lock
	// serializes them) must end at paidAmount = a+b with status derived from
	// the final value.
	total := dec("1000")

	first, err := invoicing.ApplyPayment(domain.InvoiceSent, total, dec("0"), dec("300"))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePartial, first.NewStatus)

	second, err := invoicing.ApplyPayment(first.NewStatus, total, first.NewPaidAmount, dec("700"))
	require.NoError(t, err)
	assert.True(t, second.NewPaidAmount.Equal(total))
	assert.Equal(t, domain.InvoicePaid, second.NewStatus)
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, invoicing.CanCancel(dec("0")))
	assert.ErrorIs(t, invoicing.CanCancel(dec("0.01")), apperrors.ErrValidation)
}

func TestStatusConsistent(t *testing.T) {
	total := dec("100")

	assert.True(t, invoicing.StatusConsistent(domain.InvoicePaid, total, dec("100")))
	assert.False(t, invoicing.StatusConsistent(domain.InvoicePaid, total, dec("50")))
	assert.True(t, invoicing.StatusConsistent(domain.InvoicePartial, total, dec("50")))
	assert.False(t, invoicing.StatusConsistent(domain.InvoicePartial, total, dec("0")))
	assert.True(t, invoicing.StatusConsistent(domain.InvoiceSent, total, dec("0")))
	assert.False(t, invoicing.StatusConsistent(domain.InvoiceSent, total, dec("10")))
}
