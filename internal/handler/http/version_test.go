package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetServerVersion(t *testing.T) {
	for _, version := range []string{"1.2.3", "v2.0.0-beta+build.42"} {
		t.Run(version, func(t *testing.T) {
			h := NewHandler(&service.Services{AppInfoService: &fakeAppInfoService{version: version}}, logger.Nop())

			rec := httptest.NewRecorder()
			h.getServerVersion(rec, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, version, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		})
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(nil).health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
