package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

const maxErrorBody = 512

// mapHTTPError converts a non-2xx response into a sentinel error. 429 and 5xx
// are handled by the retry loop before this is reached.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	target := resp.Request.Method + " " + resp.Request.URL

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s: %s", ErrUnauthorized, target, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s: %s", ErrNotFound, target, body)
	default:
		return fmt.Errorf("%w: %s: http %d: %s", ErrRemote, target, resp.StatusCode(), body)
	}
}
