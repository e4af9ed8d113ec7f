// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the only place penny-sync talks to the remote accounting API.
//
// Every request goes through [Client], which owns the rate limiter and the
// retry policy. [Paginator], [ChangelogReader] and [ExportPoller] build on it
// to read cursor-paginated collections, changelogs and asynchronous exports.
//
// HTTP failures are mapped onto the sentinel errors in errors.go so callers
// can match them with [errors.Is].
package adapter

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/MKhiriev/penny-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteClient issues rate-limited, retried requests against the API.
type RemoteClient interface {
	// Request sends method path (relative to the base URL) and returns the raw
	// JSON response body. An empty body yields a nil message.
	Request(ctx context.Context, method, path string, opts ...RequestOption) (json.RawMessage, error)

	// Download fetches an absolute URL, typically an export file. The bearer
	// token is only sent when the URL points at the API host.
	Download(ctx context.Context, rawURL string) (Payload, error)
}

// Paginator reads every page of a cursor-paginated collection.
type Paginator interface {
	FetchAll(ctx context.Context, endpoint string, query url.Values, headers map[string]string) ([]models.Record, error)
}

// ChangelogReader lists the change events of a resource since a point in time.
type ChangelogReader interface {
	ChangesSince(ctx context.Context, resource string, since time.Time, headers map[string]string) ([]models.ChangeEvent, error)
}

// ExportPoller submits an export job and waits until it is downloadable.
type ExportPoller interface {
	Export(ctx context.Context, kind string, body map[string]any, headers map[string]string) (models.ExportJob, error)
}
