package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around resty.Client. It embeds *resty.Client to
// expose all of its methods directly.
//
//	client := utils.NewHTTPClient("https://api.example.com", 30*time.Second)
//	resp, err := client.R().Get("/me")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client rooted at baseURL.
//
// resty's own retry support is left disabled: retries, backoff and rate
// limiting belong to the caller. A zero timeout means no client timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
