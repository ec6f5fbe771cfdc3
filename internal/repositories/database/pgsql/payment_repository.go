package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portsrepo "github.com/ledgerline/invoicing_app/internal/core/ports/repositories"
	"github.com/ledgerline/invoicing_app/internal/models"
	"github.com/ledgerline/invoicing_app/internal/utils/invoicing"
	"github.com/ledgerline/invoicing_app/internal/utils/mapping"
	"github.com/ledgerline/invoicing_app/internal/utils/pagination"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryWithTx
var _ portsrepo.PaymentRepositoryWithTx = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, tenant_id, customer_id, invoice_id, amount, payment_date, method, reference, notes,
       created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.TenantID,
		&m.CustomerID,
		&m.InvoiceID,
		&m.Amount,
		&m.PaymentDate,
		&m.Method,
		&m.Reference,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

const insertPaymentQuery = `
	INSERT INTO payments (payment_id, tenant_id, customer_id, invoice_id, amount, payment_date, method, reference, notes, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

// SavePayment persists a payment that is not applied to any invoice.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	modelPayment := mapping.ToModelPayment(payment)
	_, err := r.Pool.Exec(ctx, insertPaymentQuery,
		modelPayment.PaymentID,
		modelPayment.TenantID,
		modelPayment.CustomerID,
		modelPayment.InvoiceID,
		modelPayment.Amount,
		modelPayment.PaymentDate,
		modelPayment.Method,
		modelPayment.Reference,
		modelPayment.Notes,
		modelPayment.CreatedAt,
		modelPayment.CreatedBy,
		modelPayment.LastUpdatedAt,
		modelPayment.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+modelPayment.PaymentID, err)
	}
	return nil
}

// SavePaymentAndApply persists a payment and applies it to its invoice within
// a DB transaction. The invoice row is locked first; the new paid amount and
// status are derived from the locked state so concurrent applications
// serialize instead of clobbering each other.
func (r *PgxPaymentRepository) SavePaymentAndApply(ctx context.Context, payment domain.Payment) (*domain.Invoice, error) {
	if payment.InvoiceID == nil {
		return nil, apperrors.NewBadRequestError("payment has no invoice to apply to")
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE tenant_id = $1 AND invoice_id = $2 AND deleted_at IS NULL
		FOR UPDATE;
	`
	modelInvoice, err := scanInvoice(tx.QueryRow(ctx, lockQuery, payment.TenantID, *payment.InvoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock invoice "+*payment.InvoiceID, err)
	}

	application, err := invoicing.ApplyPayment(
		domain.InvoiceStatus(modelInvoice.Status),
		modelInvoice.Total,
		modelInvoice.PaidAmount,
		payment.Amount,
	)
	if err != nil {
		return nil, err
	}

	modelPayment := mapping.ToModelPayment(payment)
	_, err = tx.Exec(ctx, insertPaymentQuery,
		modelPayment.PaymentID,
		modelPayment.TenantID,
		modelPayment.CustomerID,
		modelPayment.InvoiceID,
		modelPayment.Amount,
		modelPayment.PaymentDate,
		modelPayment.Method,
		modelPayment.Reference,
		modelPayment.Notes,
		modelPayment.CreatedAt,
		modelPayment.CreatedBy,
		modelPayment.LastUpdatedAt,
		modelPayment.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert payment "+modelPayment.PaymentID, err)
	}

	updateQuery := `
		UPDATE invoices
		SET paid_amount = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND invoice_id = $2;
	`
	_, err = tx.Exec(ctx, updateQuery,
		payment.TenantID,
		*payment.InvoiceID,
		application.NewPaidAmount,
		string(application.NewStatus),
		payment.CreatedAt,
		payment.CreatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to apply payment to invoice "+*payment.InvoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, apperrors.NewAppError(500, "failed to commit payment "+modelPayment.PaymentID, err)
	}

	modelInvoice.PaidAmount = application.NewPaidAmount
	modelInvoice.Status = models.InvoiceStatus(application.NewStatus)
	modelInvoice.LastUpdatedAt = payment.CreatedAt
	modelInvoice.LastUpdatedBy = payment.CreatedBy
	updated := mapping.ToDomainInvoice(modelInvoice)
	return &updated, nil
}

// FindPaymentByID retrieves a payment by ID, scoped to a tenant.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, tenantID string, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE tenant_id = $1 AND payment_id = $2 AND deleted_at IS NULL;
	`
	modelPayment, err := scanPayment(r.Pool.QueryRow(ctx, query, tenantID, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}

	domainPayment := mapping.ToDomainPayment(modelPayment)
	return &domainPayment, nil
}

// ListPaymentsByTenant retrieves a paginated list of payments using token-based pagination.
func (r *PgxPaymentRepository) ListPaymentsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, customerID *string, invoiceID *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + paymentColumns + `
		FROM payments
	`
	filterClause := `WHERE tenant_id = $1 AND deleted_at IS NULL`
	args := []interface{}{tenantID}

	if customerID != nil {
		args = append(args, *customerID)
		filterClause += ` AND customer_id = $` + strconv.Itoa(len(args))
	}
	if invoiceID != nil {
		args = append(args, *invoiceID)
		filterClause += ` AND invoice_id = $` + strconv.Itoa(len(args))
	}

	// Ordering is crucial and must be stable.
	orderByClause := `ORDER BY payment_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (payment_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query payments for tenant "+tenantID, err)
	}
	defer rows.Close()

	modelPayments := make([]models.Payment, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payment row for tenant "+tenantID, scanErr)
		}
		modelPayments = append(modelPayments, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating payment rows for tenant "+tenantID, err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := modelPayments
	if len(modelPayments) > limit {
		lastPayment := modelPayments[limit-1]
		newToken := pagination.EncodeToken(lastPayment.PaymentDate, lastPayment.CreatedAt)
		nextTokenVal = &newToken
		results = modelPayments[:limit]
	}

	return mapping.ToDomainPaymentSlice(results), nextTokenVal, nil
}

// FindPaymentsByCustomer retrieves all live payments for one customer, oldest first.
func (r *PgxPaymentRepository) FindPaymentsByCustomer(ctx context.Context, tenantID string, customerID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE tenant_id = $1 AND customer_id = $2 AND deleted_at IS NULL
		ORDER BY payment_date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for customer "+customerID, err)
	}
	defer rows.Close()

	modelPayments := []models.Payment{}
	for rows.Next() {
		m, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for customer "+customerID, scanErr)
		}
		modelPayments = append(modelPayments, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for customer "+customerID, err)
	}

	return mapping.ToDomainPaymentSlice(modelPayments), nil
}
