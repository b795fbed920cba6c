package services

// ServiceContainer holds all service facades and is passed to the handler
// registration so routes share one wired set of dependencies.
type ServiceContainer struct {
	Recurring RecurringSvcFacade
	Entry     EntrySvcFacade
	Account   AccountSvcFacade
	Category  CategorySvcFacade
	Reporting ReportingSvcFacade
}
