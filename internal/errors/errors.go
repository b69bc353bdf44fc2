package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ServerError is the base interface for all server errors.
type ServerError interface {
	error
	IsServerError() bool
}

// Compile-time verification that all error types implement ServerError.
var (
	_ ServerError = (*UnknownOperationError)(nil)
	_ ServerError = (*InvalidArgumentsError)(nil)
	_ ServerError = (*ConnectError)(nil)
	_ ServerError = (*ConfigError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrServerNotConfigured indicates a nil or zero-value server was used.
	ErrServerNotConfigured = errors.New("MCP server is not configured")

	// ErrTransportRequired indicates Connect was called without a transport.
	ErrTransportRequired = errors.New("transport is required")
)

// Kinds of registry entries named by UnknownOperationError.
const (
	KindTool     = "tool"
	KindResource = "resource"
	KindPrompt   = "prompt"
)

// UnknownOperationError indicates a request named a tool, resource, or prompt
// that has no registration.
type UnknownOperationError struct {
	Kind string
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.Name)
}

// IsServerError implements ServerError.
func (e *UnknownOperationError) IsServerError() bool { return true }

// FieldError describes one argument that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (f FieldError) String() string {
	return f.Field + ": " + f.Reason
}

// InvalidArgumentsError indicates the argument bundle of a request did not
// match the declared input shape. Fields lists every violation.
type InvalidArgumentsError struct {
	Operation string
	Fields    []FieldError
	Err       error
}

func (e *InvalidArgumentsError) Error() string {
	if len(e.Fields) == 0 && e.Err != nil {
		return fmt.Sprintf("invalid arguments for %s: %v", e.Operation, e.Err)
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}

	return fmt.Sprintf("invalid arguments for %s: %s", e.Operation, strings.Join(parts, "; "))
}

func (e *InvalidArgumentsError) Unwrap() error {
	return e.Err
}

// FieldNames returns the names of the violating fields in order.
func (e *InvalidArgumentsError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}

	return names
}

// IsServerError implements ServerError.
func (e *InvalidArgumentsError) IsServerError() bool { return true }

// ConnectError indicates the server failed to connect to its transport.
// It is never retried.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect transport: %v", e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// IsServerError implements ServerError.
func (e *ConnectError) IsServerError() bool { return true }

// ConfigError indicates a configuration value was rejected.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// IsServerError implements ServerError.
func (e *ConfigError) IsServerError() bool { return true }
