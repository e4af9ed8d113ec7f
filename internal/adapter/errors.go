package adapter

import "errors"

var (
	// ErrUnauthorized is returned on HTTP 401. It is never retried.
	ErrUnauthorized = errors.New("remote api: unauthorized")
	// ErrNotFound is returned on HTTP 404.
	ErrNotFound = errors.New("remote api: not found")
	// ErrRemote covers other 4xx responses and 5xx or transport failures that
	// outlived every attempt.
	ErrRemote = errors.New("remote api error")

	ErrUnexpectedPayload = errors.New("unexpected remote payload")

	ErrExportFailed     = errors.New("export job failed")
	ErrExportTimeout    = errors.New("export job did not complete in time")
	ErrExportNoDownload = errors.New("export job completed without a download url")
)
