package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/invoicing_app/internal/apperrors"
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	portsrepo "github.com/ledgerline/invoicing_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/invoicing_app/internal/core/ports/services"
	"github.com/ledgerline/invoicing_app/internal/dto"
	"github.com/ledgerline/invoicing_app/internal/utils"
)

type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
}

// NewTenantService creates the tenant service.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.TenantSvcFacade {
	return &tenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
	}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

func (s *tenantService) GetTenantByDomain(ctx context.Context, domainSlug string) (*domain.Tenant, error) {
	return s.tenantRepo.FindTenantByDomain(ctx, domainSlug)
}

// RegisterTenant creates a tenant and its first admin user in one repository
// transaction. A failure at any point leaves no tenant row behind, so the
// domain can be retried.
func (s *tenantService) RegisterTenant(ctx context.Context, req dto.RegisterRequest) (*domain.Tenant, *domain.User, error) {
	currency := req.DefaultCurrency
	if currency == "" {
		currency = "USD"
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password during registration")
		return nil, nil, err
	}

	now := time.Now()
	tenant := domain.Tenant{
		TenantID:        uuid.NewString(),
		Name:            req.TenantName,
		Domain:          req.TenantDomain,
		DefaultCurrency: currency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	admin := domain.User{
		UserID:       uuid.NewString(),
		TenantID:     tenant.TenantID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.tenantRepo.SaveTenantWithAdmin(ctx, tenant, admin); err != nil {
		s.LogError(ctx, err, "Failed to register tenant", "tenant_domain", req.TenantDomain)
		return nil, nil, err
	}

	s.LogInfo(ctx, "Tenant registered",
		"tenant_id", tenant.TenantID,
		"tenant_domain", tenant.Domain,
		"admin_user_id", admin.UserID,
	)
	return &tenant, &admin, nil
}

// requireTenantAdmin fails with ErrForbidden unless userID is an admin of tenantID.
func (s *tenantService) requireTenantAdmin(ctx context.Context, tenantID string, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TenantID != tenantID || user.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest, requestingUserID string) (*domain.Tenant, error) {
	if err := s.requireTenantAdmin(ctx, tenantID, requestingUserID); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.DefaultCurrency != nil {
		tenant.DefaultCurrency = *req.DefaultCurrency
	}
	tenant.LastUpdatedAt = time.Now()
	tenant.LastUpdatedBy = requestingUserID

	if err := s.tenantRepo.UpdateTenant(ctx, *tenant); err != nil {
		s.LogError(ctx, err, "Failed to update tenant", "tenant_id", tenantID)
		return nil, err
	}

	return tenant, nil
}
