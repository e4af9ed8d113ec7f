// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/MKhiriev/penny-sync/internal/utils"
	"github.com/go-resty/resty/v2"
)

// Client is the single choke point for remote API traffic.
type Client struct {
	http        *utils.HTTPClient
	limiter     *Limiter
	token       string
	apiHost     string
	maxAttempts int
	sleep       sleepFunc
	now         func() time.Time
	logger      *logger.Logger
}

// Payload is a downloaded file.
type Payload struct {
	Data        []byte
	ContentType string
}

type requestOptions struct {
	query   url.Values
	headers map[string]string
	body    any
}

// RequestOption customizes a single [Client.Request].
type RequestOption func(*requestOptions)

func WithQuery(query url.Values) RequestOption {
	return func(o *requestOptions) { o.query = query }
}

// WithHeaders adds extra request headers, such as API version opt-ins.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) { o.headers = headers }
}

// WithBody sends body as JSON.
func WithBody(body any) RequestOption {
	return func(o *requestOptions) { o.body = body }
}

// NewClient builds a client for the API described by cfg. The client owns
// its limiter, so a process should share one client across a run.
func NewClient(cfg config.Remote, log *logger.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url: %w", err)
	}
	u, _ := url.Parse(baseURL)

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Client{
		http:        utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		limiter:     NewLimiter(cfg.RateLimit),
		token:       strings.TrimSpace(cfg.Token),
		apiHost:     u.Host,
		maxAttempts: maxAttempts,
		sleep:       sleepContext,
		now:         time.Now,
		logger:      log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Request implements [RemoteClient].
func (c *Client) Request(ctx context.Context, method, path string, opts ...RequestOption) (json.RawMessage, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	resp, err := c.do(ctx, method, path, o, true)
	if err != nil {
		return nil, err
	}

	body := resp.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s %s: response is not json", ErrUnexpectedPayload, method, path)
	}
	return json.RawMessage(body), nil
}

// Download implements [RemoteClient].
func (c *Client) Download(ctx context.Context, rawURL string) (Payload, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: invalid download url: %w", ErrUnexpectedPayload, err)
	}

	// relative URLs resolve against the API, absolute ones may point at a file host
	withAuth := !u.IsAbs() || u.Host == c.apiHost
	o := requestOptions{headers: map[string]string{"Accept": "*/*"}}

	resp, err := c.do(ctx, http.MethodGet, rawURL, o, withAuth)
	if err != nil {
		return Payload{}, err
	}

	return Payload{Data: resp.Body(), ContentType: resp.Header().Get("Content-Type")}, nil
}

// do runs the request loop: wait for the limiter, send, and decide whether to
// retry. 429 retries are bounded only by ctx. 5xx and transport failures
// consume attempts.
func (c *Client) do(ctx context.Context, method, target string, o requestOptions, withAuth bool) (*resty.Response, error) {
	log := logger.FromContext(ctx)
	attempt := 0

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req := c.http.R().SetContext(ctx)
		if o.query != nil {
			req.SetQueryParamsFromValues(o.query)
		}
		if len(o.headers) > 0 {
			req.SetHeaders(o.headers)
		}
		if withAuth && c.token != "" {
			req.SetAuthToken(c.token)
		}
		if o.body != nil {
			req.SetHeader("Content-Type", "application/json").SetBody(o.body)
		}

		resp, err := req.Execute(method, target)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}

			attempt++
			if attempt >= c.maxAttempts {
				log.Err(err).Str("func", "*Client.do").Str("target", target).Int("attempts", attempt).Msg("giving up after transport errors")
				return nil, fmt.Errorf("%w: %s %s: %w", ErrRemote, method, target, err)
			}

			wait := backoff(attempt)
			log.Warn().Err(err).Str("func", "*Client.do").Str("target", target).Dur("backoff", wait).Msg("transport error, retrying")
			if err = c.sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		switch status := resp.StatusCode(); {
		case status == http.StatusTooManyRequests:
			wait := parseRetryAfter(resp.Header().Get("Retry-After"), c.now())
			log.Warn().Str("func", "*Client.do").Str("target", target).Dur("retry_after", wait).Msg("rate limited by remote")
			if err = c.sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue

		case status >= http.StatusInternalServerError:
			attempt++
			if attempt >= c.maxAttempts {
				log.Error().Str("func", "*Client.do").Str("target", target).Int("status", status).Int("attempts", attempt).Msg("giving up after server errors")
				return nil, mapHTTPError(resp)
			}

			wait := backoff(attempt)
			log.Warn().Str("func", "*Client.do").Str("target", target).Int("status", status).Dur("backoff", wait).Msg("server error, retrying")
			if err = c.sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		if err = mapHTTPError(resp); err != nil {
			return nil, err
		}

		log.Debug().Str("func", "*Client.do").Str("method", method).Str("target", target).Int("status", resp.StatusCode()).Msg("remote request done")
		return resp, nil
	}
}
