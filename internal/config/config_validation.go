// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// validate checks the merged configuration before it is used at startup.
// The API token is checked separately by [StructuredConfig.ValidateRemoteAccess]
// because offline commands do not need it.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.App.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel))
	}

	if u, err := url.Parse(cfg.Remote.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: base url %q", ErrInvalidRemoteConfigs, cfg.Remote.BaseURL))
	}
	if cfg.Remote.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("%w: rate limit must be positive", ErrInvalidRemoteConfigs))
	}
	if cfg.Remote.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%w: max attempts must be at least 1", ErrInvalidRemoteConfigs))
	}
	if cfg.Remote.PerPage < 1 {
		errs = append(errs, fmt.Errorf("%w: per page must be positive", ErrInvalidRemoteConfigs))
	}

	switch cfg.Storage.DB.Driver {
	case DriverSQLite, DriverPostgres:
	case "postgres", "postgresql":
		cfg.Storage.DB.Driver = DriverPostgres
	default:
		errs = append(errs, fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver))
	}
	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs))
	}
	if (cfg.Storage.Archive.AccessKeyID == "") != (cfg.Storage.Archive.SecretAccessKey == "") {
		errs = append(errs, fmt.Errorf("%w: archive access key id and secret must be set together", ErrInvalidStorageConfigs))
	}

	if cfg.Export.PollInterval <= 0 || cfg.Export.MaxWait <= 0 {
		errs = append(errs, fmt.Errorf("%w: poll interval and max wait must be positive", ErrInvalidExportConfigs))
	}

	if cfg.Workers.SyncInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: sync interval must be positive", ErrInvalidWorkerConfigs))
	}
	if _, _, _, err := cfg.Workers.DailyReload(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidWorkerConfigs, err))
	}

	if cfg.Server.HTTPAddress != "" {
		var addr NetAddress
		if err := addr.Set(cfg.Server.HTTPAddress); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err))
		}
	}

	return errors.Join(errs...)
}

// ValidateRemoteAccess reports whether commands that call the remote API can run.
func (cfg *StructuredConfig) ValidateRemoteAccess() error {
	if strings.TrimSpace(cfg.Remote.Token) == "" {
		return ErrMissingToken
	}
	return nil
}

// DailyReload parses FullReloadAt. enabled is false for "off" or an empty value.
func (w Workers) DailyReload() (hour, minute int, enabled bool, err error) {
	value := strings.TrimSpace(w.FullReloadAt)
	if value == "" || strings.EqualFold(value, DailyReloadOff) {
		return 0, 0, false, nil
	}

	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, false, fmt.Errorf("full reload time %q is not HH:MM", w.FullReloadAt)
	}
	return t.Hour(), t.Minute(), true, nil
}
