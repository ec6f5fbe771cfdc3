package models

import "time"

// Tenant mirrors the tenants table.
type Tenant struct {
	TenantID        string `json:"tenantID"`
	Name            string `json:"name"`
	Domain          string `json:"domain"`
	DefaultCurrency string `json:"defaultCurrency"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
