package demoserver

import (
	"log/slog"
)

// Default implementation identity reported during initialization.
const (
	DefaultName    = "Demo"
	DefaultVersion = "1.0.0"
)

// Option configures a Server using the functional options pattern.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	name        string
	version     string
	catalogRoot string
	metrics     bool
}

func applyOptions(opts []Option) *options {
	o := &options{
		name:    DefaultName,
		version: DefaultVersion,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = NopLogger()
	}

	return o
}

// WithLogger sets the logger for diagnostics.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName overrides the implementation name reported to clients.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithVersion overrides the implementation version reported to clients.
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = version
	}
}

// WithCatalogRoot sets the directory the static file listing points into.
func WithCatalogRoot(root string) Option {
	return func(o *options) {
		o.catalogRoot = root
	}
}

// WithMetrics enables request metrics, served by Server.MetricsHandler.
func WithMetrics() Option {
	return func(o *options) {
		o.metrics = true
	}
}
