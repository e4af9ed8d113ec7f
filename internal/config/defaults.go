package config

import "time"

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"

	DailyReloadOff = "off"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: "info"},
		Remote: Remote{
			BaseURL:        "https://app.pennylane.com/api/external/v2",
			RateLimit:      4.5,
			RequestTimeout: 30 * time.Second,
			MaxAttempts:    3,
			PerPage:        100,
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverSQLite,
				DSN:    "pennysync.db",
			},
			Archive: Archive{Prefix: "exports"},
		},
		Export: Export{
			PollInterval: 5 * time.Second,
			MaxWait:      300 * time.Second,
		},
		Workers: Workers{
			SyncInterval: 5 * time.Minute,
			FullReloadAt: "03:00",
		},
		Server: Server{ShutdownTimeout: 10 * time.Second},
		EnvFile: ".env",
	}
}
