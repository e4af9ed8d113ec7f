// Package cli implements the pennysync command line.
//
// Commands:
//
//	run        one synchronization run, exit code 1 when a resource fails
//	daemon     scheduled runs plus the optional status server
//	check      connectivity test against the API
//	status     persisted sync state of every resource
//	resources  the resource catalog grouped by class
//	version    build information
//
// Configuration flags are shared by every command; see [config.BindFlags].
package cli
