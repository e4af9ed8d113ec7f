package http

import (
	"net/http"

	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/internal/utils"
	"github.com/MKhiriev/penny-sync/models"
)

// statusResponse is the body of GET /api/status. LastRun is null until the
// first run of this process has finished.
type statusResponse struct {
	Resources []models.SyncState `json:"resources"`
	LastRun   *models.RunReport  `json:"last_run"`
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	states, err := h.services.SyncService.States(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStatus").Msg("error reading sync states")
		http.Error(w, "error reading sync states", statusFromError(err))
		return
	}
	if states == nil {
		states = []models.SyncState{}
	}

	response := statusResponse{Resources: states}
	if report, ok := h.services.SyncService.LastReport(); ok {
		response.LastRun = &report
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
