// Package errors defines error types for the demo MCP server.
//
// Dispatch failures (unknown names, argument violations) and lifecycle failures
// (transport connect, configuration) are modelled as structured error types.
// All error types support unwrapping and can be checked using errors.Is,
// errors.As, and errors.AsType.
package errors
