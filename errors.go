package demoserver

import "github.com/wagiedev/mcp-demo-server/internal/errors"

// Re-export error types from internal package

// ServerError is the base interface for all server errors.
type ServerError = errors.ServerError

// UnknownOperationError indicates a request named an unregistered tool,
// resource, or prompt.
type UnknownOperationError = errors.UnknownOperationError

// InvalidArgumentsError indicates arguments did not match the input shape.
type InvalidArgumentsError = errors.InvalidArgumentsError

// FieldError describes one invalid argument.
type FieldError = errors.FieldError

// ConnectError indicates the server failed to connect to its transport.
type ConnectError = errors.ConnectError

// ConfigError indicates a configuration value was rejected.
type ConfigError = errors.ConfigError

// Re-export sentinel errors from internal package.
var (
	// ErrServerNotConfigured indicates a nil Server was used.
	ErrServerNotConfigured = errors.ErrServerNotConfigured

	// ErrTransportRequired indicates Connect was called without a transport.
	ErrTransportRequired = errors.ErrTransportRequired
)
