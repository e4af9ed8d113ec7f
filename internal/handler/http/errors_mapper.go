package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/penny-sync/internal/store"
)

var errorStatusMap = map[error]int{
	context.Canceled:         http.StatusServiceUnavailable,
	context.DeadlineExceeded: http.StatusGatewayTimeout,

	store.ErrSyncStateNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
