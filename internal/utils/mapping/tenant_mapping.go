package mapping

import (
	"github.com/ledgerline/invoicing_app/internal/core/domain"
	"github.com/ledgerline/invoicing_app/internal/models"
)

// ToModelTenant converts a domain.Tenant to its database model.
func ToModelTenant(d domain.Tenant) models.Tenant {
	return models.Tenant{
		TenantID:        d.TenantID,
		Name:            d.Name,
		Domain:          d.Domain,
		DefaultCurrency: d.DefaultCurrency,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		DeletedAt:       d.DeletedAt,
	}
}

// ToDomainTenant converts a models.Tenant to its domain form.
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:        m.TenantID,
		Name:            m.Name,
		Domain:          m.Domain,
		DefaultCurrency: m.DefaultCurrency,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		DeletedAt:       m.DeletedAt,
	}
}
