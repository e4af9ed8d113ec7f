// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/penny-sync/models"
)

// FetchBatchSize is the maximum number of ids requested through one id filter.
const FetchBatchSize = 100

// Partition splits change events into ids to upsert and ids to delete.
//
// An id with at least one delete event is deleted, whatever else happened
// to it within the window. Every other id is upserted. Both lists keep the
// order in which ids were first seen and hold each id once.
func Partition(events []models.ChangeEvent) (upserts, deletes []int64) {
	deleted := make(map[int64]struct{})
	for _, e := range events {
		if e.Operation == models.OperationDelete {
			deleted[e.RemoteID] = struct{}{}
		}
	}

	seen := make(map[int64]struct{}, len(events))
	for _, e := range events {
		if _, ok := seen[e.RemoteID]; ok {
			continue
		}
		seen[e.RemoteID] = struct{}{}

		if _, ok := deleted[e.RemoteID]; ok {
			deletes = append(deletes, e.RemoteID)
		} else {
			upserts = append(upserts, e.RemoteID)
		}
	}
	return upserts, deletes
}

type idFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// idFilterQuery builds the list filter selecting ids.
func idFilterQuery(ids []int64) url.Values {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	filter, _ := json.Marshal([]idFilter{{Field: "id", Operator: "in", Value: strings.Join(parts, ",")}})
	return url.Values{"filter": {string(filter)}}
}
