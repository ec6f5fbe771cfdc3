package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
)

// TenantReader defines read operations for tenant data
type TenantReader interface {
	// FindTenantByID retrieves a specific tenant by its ID.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// FindTenantByDomain retrieves a tenant by its unique domain slug.
	FindTenantByDomain(ctx context.Context, domainSlug string) (*domain.Tenant, error)
}

// TenantWriter defines write operations for tenant data
type TenantWriter interface {
	// SaveTenantWithAdmin persists a new tenant and its first admin user
	// atomically. Either both rows land or neither does.
	SaveTenantWithAdmin(ctx context.Context, tenant domain.Tenant, admin domain.User) error

	// UpdateTenant updates an existing tenant's details.
	UpdateTenant(ctx context.Context, tenant domain.Tenant) error
}

// TenantLifecycleManager defines operations for managing tenant lifecycle
type TenantLifecycleManager interface {
	// MarkTenantDeleted marks a tenant as deleted (soft delete).
	MarkTenantDeleted(ctx context.Context, tenantID string, deletedAt time.Time, deletedBy string) error
}

// TenantRepositoryFacade combines all tenant-related repository interfaces
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
	TenantLifecycleManager
}
