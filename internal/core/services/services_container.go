package services

import (
	"github.com/redis/go-redis/v9"

	portsrepo "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/repositories"
	portssvc "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. redisClient may be nil to run without caching.
func NewServiceContainer(repos portsrepo.RepositoryProvider, redisClient *redis.Client) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Entry = NewEntryService(repos.EntryRepo, repos.CategoryRepo)
	container.Recurring = NewRecurringService(repos.RecurringRepo, repos.CategoryRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, redisClient)

	return container
}
