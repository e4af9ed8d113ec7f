// Package utils provides general-purpose helpers used across penny-sync:
// type-safe context keys, HTTP response writing, the shared HTTP client
// and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, preventing collisions with
// string keys used by other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// RunIDCtxKey is the key under which the identifier of the current sync run
// is stored.
//
//	ctx := context.WithValue(ctx, utils.RunIDCtxKey, "0190...")
var RunIDCtxKey = contextKey("runID")

// WithRunID returns a copy of ctx carrying runID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDCtxKey, runID)
}

// GetRunIDFromContext retrieves the run identifier from the context.
//
// ok is false when the value is missing, empty or not a string.
func GetRunIDFromContext(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(RunIDCtxKey).(string)
	return runID, ok && runID != ""
}
