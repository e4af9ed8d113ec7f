package config

import "errors"

// Validation errors returned when a configuration group is incomplete or invalid.
var (
	ErrInvalidAppConfigs     = errors.New("invalid app configuration")
	ErrInvalidRemoteConfigs  = errors.New("invalid remote API configuration")
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	ErrInvalidExportConfigs  = errors.New("invalid export configuration")
	ErrInvalidWorkerConfigs  = errors.New("invalid worker configuration")
	ErrInvalidServerConfigs  = errors.New("invalid server configuration")

	// ErrMissingToken is returned by [StructuredConfig.ValidateRemoteAccess]
	// for commands that talk to the remote API without a token configured.
	ErrMissingToken = errors.New("remote API token is not configured")

	ErrInvalidCatalog  = errors.New("invalid resource catalog")
	ErrUnknownResource = errors.New("unknown resource")
)
