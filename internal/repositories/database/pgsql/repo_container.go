package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	recurringRepo := newPgxRecurringRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		RecurringRepo: recurringRepo,
		EntryRepo:     entryRepo,
		AccountRepo:   accountRepo,
		CategoryRepo:  categoryRepo,
		ReportingRepo: reportingRepo,
	}
}
