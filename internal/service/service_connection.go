package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/penny-sync/internal/adapter"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/models"
)

const mePath = "/me"

type connectionService struct {
	client adapter.RemoteClient

	logger *logger.Logger
}

func NewConnectionService(client adapter.RemoteClient, logger *logger.Logger) ConnectionService {
	return &connectionService{
		client: client,
		logger: logger,
	}
}

func (c *connectionService) Check(ctx context.Context) (models.Record, error) {
	log := logger.FromContext(ctx)

	body, err := c.client.Request(ctx, http.MethodGet, mePath)
	if err != nil {
		log.Err(err).Str("func", "*connectionService.Check").Msg("remote API is not reachable")
		return models.Record{}, fmt.Errorf("%w: %w", ErrConnectionCheck, err)
	}
	if len(body) == 0 {
		return models.Record{}, nil
	}

	me, err := models.DecodeRecord(body)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrConnectionCheck, err)
	}

	log.Info().Str("func", "*connectionService.Check").Int("fields", me.Len()).Msg("remote API reachable")
	return me, nil
}
