package domain

import "time"

// Tenant is an isolated customer organization. Every other entity is scoped
// to exactly one tenant.
type Tenant struct {
	TenantID        string `json:"tenantID"` // Primary Key (UUID)
	Name            string `json:"name"`
	Domain          string `json:"domain"`          // Short slug, unique
	DefaultCurrency string `json:"defaultCurrency"` // ISO 4217, e.g. "USD"
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
