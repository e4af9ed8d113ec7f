// Package app implements the synchronizer process runtime.
//
// It wires storages, services, the status server and the scheduler
// into a single process lifecycle shared by every CLI command.
package app
