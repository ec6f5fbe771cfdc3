package services

import (
	"log"

	portsrepo "github.com/ledgerline/invoicing_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/invoicing_app/internal/core/ports/services"
	"github.com/ledgerline/invoicing_app/internal/platform/config"
	"github.com/ledgerline/invoicing_app/internal/utils/invoicing"
	"github.com/shopspring/decimal"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	defaultTaxRate := invoicing.DefaultTaxRate
	if cfg.DefaultTaxRate != "" {
		parsed, err := decimal.NewFromString(cfg.DefaultTaxRate)
		if err != nil || parsed.IsNegative() {
			log.Printf("Warning: Invalid value for DEFAULT_TAX_RATE ('%s'). Defaulting to %s.\n", cfg.DefaultTaxRate, defaultTaxRate.String())
		} else {
			defaultTaxRate = parsed
		}
	}

	container.User = NewUserService(repos.UserRepo)
	container.Tenant = NewTenantService(repos.TenantRepo, repos.UserRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo, repos.InvoiceRepo, repos.PaymentRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.CustomerRepo, defaultTaxRate)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, repos.CustomerRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
