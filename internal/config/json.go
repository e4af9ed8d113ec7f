package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON shape of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Remote struct {
		BaseURL        string   `json:"base_url"`
		Token          string   `json:"token"`
		RateLimit      float64  `json:"rate_limit"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxAttempts    int      `json:"max_attempts"`
		PerPage        int      `json:"per_page"`
	} `json:"remote,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Archive struct {
			Bucket          string `json:"bucket"`
			Prefix          string `json:"prefix"`
			Region          string `json:"region"`
			Endpoint        string `json:"endpoint"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
			UsePathStyle    bool   `json:"use_path_style"`
		} `json:"archive,omitempty"`
	} `json:"storage,omitempty"`

	Export struct {
		PollInterval Duration `json:"poll_interval"`
		MaxWait      Duration `json:"max_wait"`
	} `json:"export,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
		FullReloadAt string   `json:"full_reload_at"`
	} `json:"workers,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	CatalogPath string `json:"catalog"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	archive := jsonCfg.Storage.Archive
	cfg := &StructuredConfig{
		App: App{LogLevel: jsonCfg.App.LogLevel},
		Remote: Remote{
			BaseURL:        jsonCfg.Remote.BaseURL,
			Token:          jsonCfg.Remote.Token,
			RateLimit:      jsonCfg.Remote.RateLimit,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
			MaxAttempts:    jsonCfg.Remote.MaxAttempts,
			PerPage:        jsonCfg.Remote.PerPage,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Archive: Archive{
				Bucket:          archive.Bucket,
				Prefix:          archive.Prefix,
				Region:          archive.Region,
				Endpoint:        archive.Endpoint,
				AccessKeyID:     archive.AccessKeyID,
				SecretAccessKey: archive.SecretAccessKey,
				UsePathStyle:    archive.UsePathStyle,
			},
		},
		Export: Export{
			PollInterval: time.Duration(jsonCfg.Export.PollInterval),
			MaxWait:      time.Duration(jsonCfg.Export.MaxWait),
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
			FullReloadAt: jsonCfg.Workers.FullReloadAt,
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		CatalogPath: jsonCfg.CatalogPath,
	}

	return cfg, nil
}

// Duration is a time.Duration that unmarshals from strings like "1h" or "30s"
// as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
