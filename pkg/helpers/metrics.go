package helpers

import "expvar"

// Process-wide counters published under /debug/vars.
var (
	CatalogLoadFailures = expvar.NewInt("catalog_load_failures")
	Registrations       = expvar.NewInt("registrations")
	Logins              = expvar.NewInt("logins")
	FailedLogins        = expvar.NewInt("failed_logins")
	Checkouts           = expvar.NewInt("checkouts")
	PurchaseLines       = expvar.NewInt("purchase_lines_recorded")
	PurchaseLineErrors  = expvar.NewInt("purchase_line_errors")
)
