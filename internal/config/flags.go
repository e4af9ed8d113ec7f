package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds a listen address as host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Flags is the command-line layer of the configuration. It is bound to a
// flag set before parsing and read with [Flags.Config] afterwards.
type Flags struct {
	cfg     StructuredConfig
	address NetAddress
}

// BindFlags registers the configuration flags on fs.
//
// Flags:
//
//	-c/--config        json file path with configs
//	--env-file         .env file path
//	--catalog          TOML resource catalog path
//	--log-level        minimum log level
//	--base-url         API base URL
//	--token            API bearer token
//	--rate-limit       requests per second
//	--request-timeout  per-request timeout (e.g. "30s")
//	--db-driver        sqlite3 or pgx
//	-d/--dsn           database DSN
//	--archive-bucket   S3 bucket receiving raw export payloads
//	--sync-interval    incremental run period (e.g. "5m")
//	--full-reload-at   daily full run time "HH:MM" or "off"
//	-a/--address       status server address host:port
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.StringVarP(&f.cfg.JSONFilePath, "config", "c", "", "JSON config file path")
	fs.StringVar(&f.cfg.EnvFile, "env-file", "", "Path of the .env file")
	fs.StringVar(&f.cfg.CatalogPath, "catalog", "", "TOML resource catalog path")
	fs.StringVar(&f.cfg.App.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.cfg.Remote.BaseURL, "base-url", "", "API base URL")
	fs.StringVar(&f.cfg.Remote.Token, "token", "", "API bearer token")
	fs.Float64Var(&f.cfg.Remote.RateLimit, "rate-limit", 0, "Maximum requests per second")
	fs.DurationVar(&f.cfg.Remote.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&f.cfg.Storage.DB.Driver, "db-driver", "", "Database driver (sqlite3, pgx)")
	fs.StringVarP(&f.cfg.Storage.DB.DSN, "dsn", "d", "", "Database DSN")
	fs.StringVar(&f.cfg.Storage.Archive.Bucket, "archive-bucket", "", "S3 bucket for raw export payloads")
	fs.DurationVar(&f.cfg.Workers.SyncInterval, "sync-interval", 0, "Incremental sync period (e.g., 5m)")
	fs.StringVar(&f.cfg.Workers.FullReloadAt, "full-reload-at", "", "Daily full reload time HH:MM, or off")
	fs.VarP(&f.address, "address", "a", "Status server address host:port")

	return f
}

// Config returns the values collected from the command line. Unset flags are zero.
func (f *Flags) Config() *StructuredConfig {
	cfg := f.cfg
	cfg.Server.HTTPAddress = f.address.String()
	return &cfg
}

// String returns a host:port string, or "" when the address is unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. An empty host listens on all interfaces; otherwise
// the host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

func (a *NetAddress) Type() string {
	return "host:port"
}
