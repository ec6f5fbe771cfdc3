package services

import (
	"context"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/ledgerline/invoicing_app/internal/dto"
)

// TenantReaderSvc defines read operations for tenant data
type TenantReaderSvc interface {
	// GetTenantByID retrieves a tenant by ID.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// GetTenantByDomain retrieves a tenant by its domain slug.
	GetTenantByDomain(ctx context.Context, domainSlug string) (*domain.Tenant, error)
}

// TenantWriterSvc defines write operations for tenant data
type TenantWriterSvc interface {
	// RegisterTenant creates a tenant together with its first admin user in a
	// single transaction.
	RegisterTenant(ctx context.Context, req dto.RegisterRequest) (*domain.Tenant, *domain.User, error)

	// UpdateTenant updates an existing tenant. Admin only.
	UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest, requestingUserID string) (*domain.Tenant, error)
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantWriterSvc
}
