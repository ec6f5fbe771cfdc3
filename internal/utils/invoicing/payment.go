package invoicing

import (
	"fmt"

	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentApplication is the computed outcome of applying a payment amount to
// an invoice: the new paid amount and the status it implies.
type PaymentApplication struct {
	NewPaidAmount decimal.Decimal
	NewStatus     domain.InvoiceStatus
}

// ApplyPayment derives the paid amount and status an invoice moves to when
// amount is credited against it. It is pure; the caller is responsible for
// running it against a row-locked read so concurrent applications serialize.
//
// Rules: the invoice must not be CANCELLED, the amount must be positive,
// newPaid >= total yields PAID, 0 < newPaid < total yields PARTIAL.
func ApplyPayment(current domain.InvoiceStatus, total, paidAmount, amount decimal.Decimal) (PaymentApplication, error) {
	if !current.Receivable() {
		return PaymentApplication{}, fmt.Errorf("%w: cannot apply a payment to a cancelled invoice", apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return PaymentApplication{}, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrInvalidAmount)
	}

	newPaid := paidAmount.Add(amount)

	status := current
	if newPaid.GreaterThanOrEqual(total) {
		status = domain.InvoicePaid
	} else if newPaid.IsPositive() {
		status = domain.InvoicePartial
	}

	return PaymentApplication{NewPaidAmount: newPaid, NewStatus: status}, nil
}

// CanCancel reports whether an invoice may be cancelled. Invoices that have
// received any payment cannot be cancelled.
func CanCancel(paidAmount decimal.Decimal) error {
	if paidAmount.IsPositive() {
		return fmt.Errorf("%w: cannot cancel an invoice with payments", apperrors.ErrValidation)
	}
	return nil
}

// StatusConsistent reports whether a status value agrees with the
// paid/total relationship. The administrative status override is allowed to
// break this; services use the check to log when it does.
func StatusConsistent(status domain.InvoiceStatus, total, paidAmount decimal.Decimal) bool {
	switch status {
	case domain.InvoicePaid:
		return paidAmount.GreaterThanOrEqual(total)
	case domain.InvoicePartial:
		return paidAmount.IsPositive() && paidAmount.LessThan(total)
	case domain.InvoiceDraft, domain.InvoiceSent, domain.InvoiceOverdue:
		return !paidAmount.IsPositive()
	case domain.InvoiceCancelled:
		return paidAmount.IsZero()
	}
	return false
}
