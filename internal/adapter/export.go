// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/models"
)

type exportResponse struct {
	ID          exportID `json:"id"`
	Status      string   `json:"status"`
	URL         string   `json:"url"`
	DownloadURL string   `json:"download_url"`
	FileURL     string   `json:"file_url"`
}

func (r exportResponse) job() models.ExportJob {
	link := r.DownloadURL
	if link == "" {
		link = r.URL
	}
	if link == "" {
		link = r.FileURL
	}
	return models.ExportJob{
		ID:          string(r.ID),
		Status:      models.ParseExportStatus(r.Status),
		DownloadURL: link,
	}
}

// exportID accepts both numeric and string job ids.
type exportID string

func (id *exportID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = exportID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = exportID(n.String())
	return nil
}

type exportPoller struct {
	client       RemoteClient
	pollInterval time.Duration
	maxWait      time.Duration
	sleep        sleepFunc
	now          func() time.Time
	logger       *logger.Logger
}

func NewExportPoller(client RemoteClient, cfg config.Export, logger *logger.Logger) ExportPoller {
	return &exportPoller{
		client:       client,
		pollInterval: cfg.PollInterval,
		maxWait:      cfg.MaxWait,
		sleep:        sleepContext,
		now:          time.Now,
		logger:       logger,
	}
}

// Export implements [ExportPoller]. It returns a job with a download URL, or
// ErrExportFailed, ErrExportTimeout or ErrExportNoDownload.
func (p *exportPoller) Export(ctx context.Context, kind string, body map[string]any, headers map[string]string) (models.ExportJob, error) {
	log := logger.FromContext(ctx)

	if body == nil {
		body = map[string]any{}
	}
	raw, err := p.client.Request(ctx, http.MethodPost, "/exports/"+url.PathEscape(kind), WithBody(body), WithHeaders(headers))
	if err != nil {
		return models.ExportJob{}, err
	}

	job, err := decodeExport(raw)
	if err != nil {
		return models.ExportJob{}, err
	}
	log.Info().Str("func", "*exportPoller.Export").Str("kind", kind).Str("job_id", job.ID).Str("status", string(job.Status)).Msg("export submitted")

	if job.Status == models.ExportCompleted && job.DownloadURL != "" {
		return job, nil
	}
	if job.Status == models.ExportFailed {
		return job, fmt.Errorf("%w: %s job %s", ErrExportFailed, kind, job.ID)
	}
	if job.ID == "" {
		return job, fmt.Errorf("%w: export submit response has no id", ErrUnexpectedPayload)
	}

	started := p.now()
	statusPath := "/exports/" + url.PathEscape(job.ID)

	for {
		if p.now().Sub(started) >= p.maxWait {
			return job, fmt.Errorf("%w: %s job %s still %s after %s", ErrExportTimeout, kind, job.ID, job.Status, p.maxWait)
		}
		if err = p.sleep(ctx, p.pollInterval); err != nil {
			return job, err
		}

		raw, err = p.client.Request(ctx, http.MethodGet, statusPath, WithHeaders(headers))
		if err != nil {
			if errors.Is(err, ErrUnauthorized) || ctx.Err() != nil {
				return job, err
			}
			log.Warn().Err(err).Str("func", "*exportPoller.Export").Str("job_id", job.ID).Msg("export status check failed, polling again")
			continue
		}

		polled, err := decodeExport(raw)
		if err != nil {
			log.Warn().Err(err).Str("func", "*exportPoller.Export").Str("job_id", job.ID).Msg("unreadable export status, polling again")
			continue
		}
		if polled.ID == "" {
			polled.ID = job.ID
		}
		job = polled

		switch {
		case job.Status == models.ExportFailed:
			return job, fmt.Errorf("%w: %s job %s", ErrExportFailed, kind, job.ID)
		case job.DownloadURL != "":
			job.Status = models.ExportCompleted
			log.Info().Str("func", "*exportPoller.Export").Str("job_id", job.ID).Dur("waited", p.now().Sub(started)).Msg("export ready")
			return job, nil
		case job.Status == models.ExportCompleted:
			return job, fmt.Errorf("%w: %s job %s", ErrExportNoDownload, kind, job.ID)
		}
	}
}

func decodeExport(raw json.RawMessage) (models.ExportJob, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return models.ExportJob{}, fmt.Errorf("%w: empty export response", ErrUnexpectedPayload)
	}

	var resp exportResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.ExportJob{}, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}
	return resp.job(), nil
}

// CurrentYearPeriod returns period_start and period_end covering the calendar year of now.
func CurrentYearPeriod(now time.Time) map[string]any {
	year := strconv.Itoa(now.Year())
	return map[string]any{
		"period_start": year + "-01-01",
		"period_end":   year + "-12-31",
	}
}
