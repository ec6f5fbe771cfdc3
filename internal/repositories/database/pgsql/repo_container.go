package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ledgerline/invoicing_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	tenantRepo := newPgxTenantRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TenantRepo:    tenantRepo,
		UserRepo:      userRepo,
		CustomerRepo:  customerRepo,
		InvoiceRepo:   invoiceRepo,
		PaymentRepo:   paymentRepo,
		ReportingRepo: reportingRepo,
	}
}
