package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portsrepo "github.com/ledgerline/invoicing_app/internal/core/ports/repositories"
	"github.com/ledgerline/invoicing_app/internal/models"
	"github.com/ledgerline/invoicing_app/internal/utils/mapping"
)

type PgxTenantRepository struct {
	BaseRepository
}

func newPgxTenantRepository(db *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxTenantRepository implements portsrepo.TenantRepositoryFacade
var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

// isUniqueViolation reports whether err is a Postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// SaveTenantWithAdmin persists a tenant and its first admin user in one DB
// transaction. A failed user insert leaves no orphaned tenant row behind, so
// the domain stays free for a retry.
func (r *PgxTenantRepository) SaveTenantWithAdmin(ctx context.Context, tenant domain.Tenant, admin domain.User) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	modelTenant := mapping.ToModelTenant(tenant)
	tenantQuery := `
        INSERT INTO tenants (tenant_id, name, domain, default_currency, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err = tx.Exec(ctx, tenantQuery,
		modelTenant.TenantID,
		modelTenant.Name,
		modelTenant.Domain,
		modelTenant.DefaultCurrency,
		modelTenant.CreatedAt,
		modelTenant.CreatedBy,
		modelTenant.LastUpdatedAt,
		modelTenant.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tenant domain %s already taken: %w", modelTenant.Domain, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save tenant: %w", err)
	}

	modelUser := mapping.ToModelUser(admin)
	userQuery := `
        INSERT INTO users (user_id, tenant_id, email, password_hash, first_name, last_name, role, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err = tx.Exec(ctx, userQuery,
		modelUser.UserID,
		modelUser.TenantID,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.FirstName,
		modelUser.LastName,
		modelUser.Role,
		modelUser.CreatedAt,
		modelUser.CreatedBy,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s already registered in tenant: %w", modelUser.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save admin user: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit tenant registration for %s: %w", modelTenant.Domain, err)
	}
	return nil
}

func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, domain, default_currency, created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM tenants
		WHERE tenant_id = $1 AND deleted_at IS NULL;
	`
	var modelTenant models.Tenant
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&modelTenant.TenantID,
		&modelTenant.Name,
		&modelTenant.Domain,
		&modelTenant.DefaultCurrency,
		&modelTenant.CreatedAt,
		&modelTenant.CreatedBy,
		&modelTenant.LastUpdatedAt,
		&modelTenant.LastUpdatedBy,
		&modelTenant.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant by ID %s: %w", tenantID, err)
	}

	domainTenant := mapping.ToDomainTenant(modelTenant)
	return &domainTenant, nil
}

func (r *PgxTenantRepository) FindTenantByDomain(ctx context.Context, domainSlug string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, domain, default_currency, created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM tenants
		WHERE domain = $1 AND deleted_at IS NULL;
	`
	var modelTenant models.Tenant
	err := r.Pool.QueryRow(ctx, query, domainSlug).Scan(
		&modelTenant.TenantID,
		&modelTenant.Name,
		&modelTenant.Domain,
		&modelTenant.DefaultCurrency,
		&modelTenant.CreatedAt,
		&modelTenant.CreatedBy,
		&modelTenant.LastUpdatedAt,
		&modelTenant.LastUpdatedBy,
		&modelTenant.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant by domain %s: %w", domainSlug, err)
	}

	domainTenant := mapping.ToDomainTenant(modelTenant)
	return &domainTenant, nil
}

func (r *PgxTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	modelTenant := mapping.ToModelTenant(tenant)
	query := `
        UPDATE tenants
        SET name = $1, default_currency = $2, last_updated_at = $3, last_updated_by = $4
        WHERE tenant_id = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelTenant.Name,
		modelTenant.DefaultCurrency,
		modelTenant.LastUpdatedAt,
		modelTenant.LastUpdatedBy,
		modelTenant.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update tenant query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("tenant not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTenantRepository) MarkTenantDeleted(ctx context.Context, tenantID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE tenants
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE tenant_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, deletedBy, tenantID)
	if err != nil {
		return fmt.Errorf("failed to mark tenant as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("tenant not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
