package dto

import (
	"time"

	"github.com/ledgerline/invoicing_app/internal/core/domain"
)

// --- Tenant DTOs ---

// UpdateTenantRequest defines data for updating a tenant. Nil fields are left unchanged.
type UpdateTenantRequest struct {
	Name            *string `json:"name,omitempty"`
	DefaultCurrency *string `json:"defaultCurrency,omitempty" binding:"omitempty,iso4217"`
}

// TenantResponse defines data returned for a tenant.
type TenantResponse struct {
	TenantID        string    `json:"tenantID"`
	Name            string    `json:"name"`
	Domain          string    `json:"domain"`
	DefaultCurrency string    `json:"defaultCurrency"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
}

// ToTenantResponse converts domain.Tenant to DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:        t.TenantID,
		Name:            t.Name,
		Domain:          t.Domain,
		DefaultCurrency: t.DefaultCurrency,
		CreatedAt:       t.CreatedAt,
		LastUpdatedAt:   t.LastUpdatedAt,
	}
}
