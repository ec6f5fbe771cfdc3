package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portsrepo "github.com/ledgerline/invoicing_app/internal/core/ports/repositories"
	"github.com/ledgerline/invoicing_app/internal/models"
	"github.com/ledgerline/invoicing_app/internal/utils/mapping"
)

type PgxCustomerRepository struct {
	db *pgxpool.Pool
}

func newPgxCustomerRepository(db *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{db: db}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, tenant_id, name, email, phone, address, tax_number,
       credit_limit, payment_terms, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.TenantID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.TaxNumber,
		&m.CreditLimit,
		&m.PaymentTerms,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	modelCustomer := mapping.ToModelCustomer(customer)
	query := `
        INSERT INTO customers (customer_id, tenant_id, name, email, phone, address, tax_number, credit_limit, payment_terms, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.db.Exec(ctx, query,
		modelCustomer.CustomerID,
		modelCustomer.TenantID,
		modelCustomer.Name,
		modelCustomer.Email,
		modelCustomer.Phone,
		modelCustomer.Address,
		modelCustomer.TaxNumber,
		modelCustomer.CreditLimit,
		modelCustomer.PaymentTerms,
		modelCustomer.CreatedAt,
		modelCustomer.CreatedBy,
		modelCustomer.LastUpdatedAt,
		modelCustomer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, tenantID string, customerID string) (*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE tenant_id = $1 AND customer_id = $2 AND deleted_at IS NULL;
	`
	modelCustomer, err := scanCustomer(r.db.QueryRow(ctx, query, tenantID, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}

	domainCustomer := mapping.ToDomainCustomer(modelCustomer)
	return &domainCustomer, nil
}

func (r *PgxCustomerRepository) ListCustomersByTenant(ctx context.Context, tenantID string, limit int, offset int, search *string) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	baseQuery := `
        SELECT ` + customerColumns + `
        FROM customers
        WHERE tenant_id = $1 AND deleted_at IS NULL
    `
	args := []interface{}{tenantID}

	if search != nil && *search != "" {
		baseQuery += ` AND (name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')`
		args = append(args, *search)
	}

	query := fmt.Sprintf("%s ORDER BY name ASC LIMIT $%d OFFSET $%d;", baseQuery, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	modelCustomers := []models.Customer{}
	for rows.Next() {
		modelCustomer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		modelCustomers = append(modelCustomers, modelCustomer)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}

	return mapping.ToDomainCustomerSlice(modelCustomers), nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	modelCustomer := mapping.ToModelCustomer(customer)
	query := `
        UPDATE customers
        SET name = $1, email = $2, phone = $3, address = $4, tax_number = $5, credit_limit = $6, payment_terms = $7, last_updated_at = $8, last_updated_by = $9
        WHERE tenant_id = $10 AND customer_id = $11 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelCustomer.Name,
		modelCustomer.Email,
		modelCustomer.Phone,
		modelCustomer.Address,
		modelCustomer.TaxNumber,
		modelCustomer.CreditLimit,
		modelCustomer.PaymentTerms,
		modelCustomer.LastUpdatedAt,
		modelCustomer.LastUpdatedBy,
		modelCustomer.TenantID,
		modelCustomer.CustomerID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update customer query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCustomerRepository) MarkCustomerDeleted(ctx context.Context, tenantID string, customerID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE customers
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE tenant_id = $3 AND customer_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, tenantID, customerID)
	if err != nil {
		return fmt.Errorf("failed to mark customer as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
