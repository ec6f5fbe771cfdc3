package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

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

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice and item data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryWithTx
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, tenant_id, customer_id, invoice_number, date, due_date, notes,
       subtotal, tax_rate, tax_amount, total, paid_amount, status,
       created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.TenantID,
		&m.CustomerID,
		&m.InvoiceNumber,
		&m.Date,
		&m.DueDate,
		&m.Notes,
		&m.Subtotal,
		&m.TaxRate,
		&m.TaxAmount,
		&m.Total,
		&m.PaidAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// SaveInvoice persists an invoice and its items within a DB transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	modelInvoice := mapping.ToModelInvoice(invoice)
	invoiceQuery := `
		INSERT INTO invoices (
			invoice_id, tenant_id, customer_id, invoice_number, date, due_date, notes,
			subtotal, tax_rate, tax_amount, total, paid_amount, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, invoiceQuery,
		modelInvoice.InvoiceID,
		modelInvoice.TenantID,
		modelInvoice.CustomerID,
		modelInvoice.InvoiceNumber,
		modelInvoice.Date,
		modelInvoice.DueDate,
		modelInvoice.Notes,
		modelInvoice.Subtotal,
		modelInvoice.TaxRate,
		modelInvoice.TaxAmount,
		modelInvoice.Total,
		modelInvoice.PaidAmount,
		modelInvoice.Status,
		modelInvoice.CreatedAt,
		modelInvoice.CreatedBy,
		modelInvoice.LastUpdatedAt,
		modelInvoice.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %s already used: %w", modelInvoice.InvoiceNumber, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+modelInvoice.InvoiceID, err)
	}

	// Items are inserted in sort order so retrieval never needs a secondary sort key.
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO invoice_items (item_id, invoice_id, description, quantity, unit_price, amount, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, item := range items {
		modelItem := mapping.ToModelInvoiceItem(item)
		batch.Queue(itemQuery,
			modelItem.ItemID,
			modelItem.InvoiceID,
			modelItem.Description,
			modelItem.Quantity,
			modelItem.UnitPrice,
			modelItem.Amount,
			modelItem.SortOrder,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert items for invoice "+modelInvoice.InvoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction for invoice "+modelInvoice.InvoiceID, err)
	}

	return nil
}

// FindInvoiceByID retrieves an invoice with its items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE tenant_id = $1 AND invoice_id = $2 AND deleted_at IS NULL;
	`
	modelInvoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, tenantID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	items, err := r.findInvoiceItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	domainInvoice := mapping.ToDomainInvoice(modelInvoice)
	domainInvoice.Items = items
	return &domainInvoice, nil
}

func (r *PgxInvoiceRepository) findInvoiceItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	query := `
		SELECT item_id, invoice_id, description, quantity, unit_price, amount, sort_order
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY sort_order;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for invoice "+invoiceID, err)
	}
	defer rows.Close()

	modelItems := []models.InvoiceItem{}
	for rows.Next() {
		var m models.InvoiceItem
		if err := rows.Scan(
			&m.ItemID,
			&m.InvoiceID,
			&m.Description,
			&m.Quantity,
			&m.UnitPrice,
			&m.Amount,
			&m.SortOrder,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for invoice "+invoiceID, err)
		}
		modelItems = append(modelItems, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for invoice "+invoiceID, err)
	}

	return mapping.ToDomainInvoiceItemSlice(modelItems), nil
}

// ListInvoicesByTenant retrieves a paginated list of invoices using token-based pagination.
// It returns the invoices, a token for the next page, and an error.
func (r *PgxInvoiceRepository) ListInvoicesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, status *domain.InvoiceStatus, customerID *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + invoiceColumns + `
		FROM invoices
	`
	filterClause := `WHERE tenant_id = $1 AND deleted_at IS NULL`
	args := []interface{}{tenantID}

	if status != nil {
		args = append(args, string(*status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if customerID != nil {
		args = append(args, *customerID)
		filterClause += ` AND customer_id = $` + strconv.Itoa(len(args))
	}

	// Ordering is crucial and must be stable.
	// We use date DESC, and created_at DESC as a tie-breaker.
	orderByClause := `ORDER BY date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres
		args = append(args, lastDate, lastCreatedAt)
		filterClause += fmt.Sprintf(" AND (date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices for tenant "+tenantID, err)
	}
	defer rows.Close()

	modelInvoices := make([]models.Invoice, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row for tenant "+tenantID, scanErr)
		}
		modelInvoices = append(modelInvoices, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows for tenant "+tenantID, err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := modelInvoices
	if len(modelInvoices) > limit {
		// The token points to the last item included in this response page.
		lastInvoice := modelInvoices[limit-1]
		newToken := pagination.EncodeToken(lastInvoice.Date, lastInvoice.CreatedAt)
		nextTokenVal = &newToken
		results = modelInvoices[:limit]
	}

	domainInvoices := make([]domain.Invoice, len(results))
	for i, m := range results {
		domainInvoices[i] = mapping.ToDomainInvoice(m)
	}

	return domainInvoices, nextTokenVal, nil
}

// FindInvoicesByCustomer retrieves all live invoices for one customer, oldest first.
func (r *PgxInvoiceRepository) FindInvoicesByCustomer(ctx context.Context, tenantID string, customerID string) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE tenant_id = $1 AND customer_id = $2 AND deleted_at IS NULL
		ORDER BY date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices for customer "+customerID, err)
	}
	defer rows.Close()

	modelInvoices := []models.Invoice{}
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row for customer "+customerID, scanErr)
		}
		modelInvoices = append(modelInvoices, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows for customer "+customerID, err)
	}

	domainInvoices := make([]domain.Invoice, len(modelInvoices))
	for i, m := range modelInvoices {
		domainInvoices[i] = mapping.ToDomainInvoice(m)
	}
	return domainInvoices, nil
}

// UpdateInvoiceStatus sets the status of an invoice.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, tenantID string, invoiceID string, status domain.InvoiceStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND invoice_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, invoiceID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for invoice "+invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found for update")
	}
	return nil
}

// CancelInvoice transitions an invoice to CANCELLED. The row is locked so a
// concurrent payment application cannot slip in between the check and the write.
func (r *PgxInvoiceRepository) CancelInvoice(ctx context.Context, tenantID string, invoiceID string, updatedByUserID string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE tenant_id = $1 AND invoice_id = $2 AND deleted_at IS NULL
		FOR UPDATE;
	`
	modelInvoice, err := scanInvoice(tx.QueryRow(ctx, lockQuery, tenantID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock invoice "+invoiceID, err)
	}

	if err := invoicing.CanCancel(modelInvoice.PaidAmount); err != nil {
		return err
	}

	updateQuery := `
		UPDATE invoices
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND invoice_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, tenantID, invoiceID, string(domain.InvoiceCancelled), updatedAt, updatedByUserID); err != nil {
		return apperrors.NewAppError(500, "failed to cancel invoice "+invoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkInvoiceDeleted soft deletes a draft invoice.
func (r *PgxInvoiceRepository) MarkInvoiceDeleted(ctx context.Context, tenantID string, invoiceID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE invoices
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE tenant_id = $3 AND invoice_id = $4 AND status = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, deletedBy, tenantID, invoiceID, string(domain.InvoiceDraft))
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark invoice as deleted", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found, not a draft, or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
