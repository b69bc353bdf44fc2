package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/wagiedev/mcp-demo-server/internal/errors"
)

// TransportKind selects how the server talks to its client.
type TransportKind string

const (
	// TransportStdio serves newline-delimited JSON-RPC over stdin/stdout.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves the streamable HTTP transport.
	TransportHTTP TransportKind = "http"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the full process configuration.
type Config struct {
	// Transport is the transport the server listens on.
	Transport TransportKind `env:"MCP_DEMO_TRANSPORT" envDefault:"stdio"`

	// HTTPAddr is the listen address used by TransportHTTP.
	HTTPAddr string `env:"MCP_DEMO_HTTP_ADDR" envDefault:"localhost:8081"`

	// HTTPRateLimit caps /mcp requests per second. Zero disables the limit.
	HTTPRateLimit float64 `env:"MCP_DEMO_HTTP_RATE_LIMIT" envDefault:"0"`

	// LogLevel is one of debug, info, warn, or error. Aliases are accepted,
	// see NormalizeLogLevel.
	LogLevel string `env:"MCP_DEMO_LOG_LEVEL" envDefault:"info"`

	// LogFormat is text or json.
	LogFormat string `env:"MCP_DEMO_LOG_FORMAT" envDefault:"text"`

	// CatalogRoot is the directory the static file listing points into.
	// Empty uses the built-in default.
	CatalogRoot string `env:"MCP_DEMO_CATALOG_ROOT"`
}

// Load parses configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses configuration from environ instead of the process
// environment. A nil map reads the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}

	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate normalises aliases and rejects values the server cannot run with.
func (c *Config) Validate() error {
	c.Transport = TransportKind(strings.ToLower(strings.TrimSpace(string(c.Transport))))
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return &errors.ConfigError{Field: "transport", Value: string(c.Transport), Reason: "must be one of stdio, http"}
	}

	if c.Transport == TransportHTTP && c.HTTPAddr == "" {
		return &errors.ConfigError{Field: "http-addr", Value: c.HTTPAddr, Reason: "is required for the http transport"}
	}

	if c.HTTPRateLimit < 0 {
		return &errors.ConfigError{
			Field:  "http-rate-limit",
			Value:  strconv.FormatFloat(c.HTTPRateLimit, 'f', -1, 64),
			Reason: "must not be negative",
		}
	}

	c.LogLevel = NormalizeLogLevel(c.LogLevel)
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return &errors.ConfigError{Field: "log-format", Value: c.LogFormat, Reason: "must be one of text, json"}
	}

	return nil
}

// NormalizeLogLevel lowercases a level name and maps aliases to slog names.
//
// Alias mappings:
//   - "warning" -> "warn"
//   - "err" -> "error"
//   - "" -> "info"
func NormalizeLogLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))

	switch level {
	case "warning":
		return "warn"
	case "err":
		return "error"
	case "":
		return "info"
	default:
		return level
	}
}

// ParseLogLevel converts a normalised level name to a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, &errors.ConfigError{Field: "log-level", Value: level, Reason: "must be one of debug, info, warn, error"}
	}
}
