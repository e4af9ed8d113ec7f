package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/internal/service"
	"github.com/MKhiriev/penny-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSyncService serves canned states and reports.
type fakeSyncService struct {
	states    []models.SyncState
	statesErr error
	report    *models.RunReport
}

func (f *fakeSyncService) Run(context.Context, service.SyncOptions) (models.RunReport, error) {
	return models.RunReport{}, nil
}

func (f *fakeSyncService) States(context.Context) ([]models.SyncState, error) {
	return f.states, f.statesErr
}

func (f *fakeSyncService) LastReport() (models.RunReport, bool) {
	if f.report == nil {
		return models.RunReport{}, false
	}
	return *f.report, true
}

// fakeAppInfoService implements service.AppInfoService.
type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string { return f.version }

func (f *fakeAppInfoService) GetBuildInfo(context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo(f.version, "", "")
}

func newTestHandler(sync *fakeSyncService) *Handler {
	if sync == nil {
		sync = &fakeSyncService{}
	}
	return NewHandler(&service.Services{
		SyncService:    sync,
		AppInfoService: &fakeAppInfoService{version: "test-version"},
	}, logger.Nop())
}

// ── NewHandler ───────────────────────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()
	h := NewHandler(svc, log)

	require.NotNil(t, h)
	assert.Same(t, svc, h.services)
	assert.Same(t, log, h.logger)
}

// ── Init ─────────────────────────────────────────────────────────────────────

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := newTestHandler(nil).Init()

	for _, path := range []string{"/api/health", "/api/status", "/api/version/"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	router := newTestHandler(nil).Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	router := newTestHandler(nil).Init()

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(method, "/api/status", nil))

			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}
