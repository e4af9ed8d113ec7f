// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/models"
)

// DefaultPerPage is the page size requested when none is configured.
const DefaultPerPage = 100

type page struct {
	Items      []json.RawMessage `json:"items"`
	HasMore    bool              `json:"has_more"`
	NextCursor string            `json:"next_cursor"`
}

type paginator struct {
	client  RemoteClient
	perPage int
	logger  *logger.Logger
}

func NewPaginator(client RemoteClient, perPage int, logger *logger.Logger) Paginator {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &paginator{client: client, perPage: perPage, logger: logger}
}

// FetchAll implements [Paginator]. Every call starts from the first page.
func (p *paginator) FetchAll(ctx context.Context, endpoint string, query url.Values, headers map[string]string) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	var (
		records []models.Record
		cursor  string
		pages   int
		seen    = make(map[string]struct{})
	)

	for {
		q := cloneValues(query)
		q.Set("per_page", strconv.Itoa(p.perPage))
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		raw, err := p.client.Request(ctx, http.MethodGet, endpoint, WithQuery(q), WithHeaders(headers))
		if err != nil {
			return nil, err
		}
		pages++

		pg, final, err := decodePage(raw)
		if err != nil {
			return nil, fmt.Errorf("%s page %d: %w", endpoint, pages, err)
		}
		if len(pg.Items) == 0 {
			break
		}

		for i, item := range pg.Items {
			rec, err := models.DecodeRecord(item)
			if err != nil {
				return nil, fmt.Errorf("%w: %s page %d item %d: %w", ErrUnexpectedPayload, endpoint, pages, i, err)
			}
			records = append(records, rec)
		}

		if final || (!pg.HasMore && pg.NextCursor == "") {
			break
		}
		if pg.NextCursor == "" {
			log.Warn().Str("func", "*paginator.FetchAll").Str("endpoint", endpoint).Int("page", pages).Msg("has_more without next_cursor, stopping")
			break
		}
		if _, dup := seen[pg.NextCursor]; dup {
			log.Warn().Str("func", "*paginator.FetchAll").Str("endpoint", endpoint).Str("cursor", pg.NextCursor).Msg("cursor repeated, stopping")
			break
		}
		seen[pg.NextCursor] = struct{}{}
		cursor = pg.NextCursor
	}

	log.Debug().Str("func", "*paginator.FetchAll").
		Str("endpoint", endpoint).
		Int("pages", pages).
		Int("records", len(records)).
		Msg("collection fetched")

	return records, nil
}

// decodePage accepts the {items, has_more, next_cursor} envelope or a bare
// JSON array, which is treated as the final page.
func decodePage(raw json.RawMessage) (page, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return page{}, true, nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return page{}, false, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
		}
		return page{Items: items}, true, nil
	}

	var pg page
	if err := json.Unmarshal(trimmed, &pg); err != nil {
		return page{}, false, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}
	return pg, false, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+2)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
