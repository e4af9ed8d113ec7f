// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/url"
	"time"

	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/models"
)

type changelogReader struct {
	pages  Paginator
	logger *logger.Logger
}

func NewChangelogReader(pages Paginator, logger *logger.Logger) ChangelogReader {
	return &changelogReader{pages: pages, logger: logger}
}

// ChangesSince implements [ChangelogReader].
//
// Events are returned in remote order and are not de-duplicated. Entries
// without an id or with an unknown operation are dropped with a warning.
func (r *changelogReader) ChangesSince(ctx context.Context, resource string, since time.Time, headers map[string]string) ([]models.ChangeEvent, error) {
	log := logger.FromContext(ctx)

	query := url.Values{}
	query.Set("start_date", since.UTC().Format(time.RFC3339))

	items, err := r.pages.FetchAll(ctx, "/changelogs/"+resource, query, headers)
	if err != nil {
		return nil, err
	}

	events := make([]models.ChangeEvent, 0, len(items))
	for _, item := range items {
		id, ok := item.ID()
		if !ok {
			log.Warn().Str("func", "*changelogReader.ChangesSince").Str("resource", resource).Msg("changelog entry without id dropped")
			continue
		}

		opText, _ := textField(item, "operation")
		op, ok := models.ParseOperation(opText)
		if !ok {
			log.Warn().Str("func", "*changelogReader.ChangesSince").
				Str("resource", resource).
				Int64("id", id).
				Str("operation", opText).
				Msg("unknown changelog operation dropped")
			continue
		}

		events = append(events, models.ChangeEvent{
			RemoteID:   id,
			Operation:  op,
			ObservedAt: observedAt(item),
		})
	}

	log.Debug().Str("func", "*changelogReader.ChangesSince").
		Str("resource", resource).
		Time("since", since).
		Int("events", len(events)).
		Msg("changelog read")

	return events, nil
}

func textField(rec models.Record, name string) (string, bool) {
	v, ok := rec.Get(name)
	if !ok {
		return "", false
	}
	return v.Text()
}

// observedAt reads the timestamp field, falling back to processed_at.
// Unparseable values yield the zero time.
func observedAt(rec models.Record) time.Time {
	for _, name := range []string{"timestamp", "processed_at"} {
		s, ok := textField(rec, name)
		if !ok || s == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
