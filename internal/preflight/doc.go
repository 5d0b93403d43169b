// Package preflight checks that the launcher can run on this machine: the
// data directory is writable, there is room for the index, the persisted
// indexes load, and the configured roots exist.
//
// Use the Checker type to run all checks:
//
//	checker := preflight.New(cfg)
//	results := checker.RunAll(ctx)
//	if checker.HasCriticalFailures(results) {
//	    // Handle failures
//	}
package preflight
