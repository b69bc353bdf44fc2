// Package protocol instruments the MCP request path.
//
// RequestLogging is a receiving middleware for the go-sdk server. For every
// incoming request or notification it:
//   - Assigns a ULID request ID, available to handlers via RequestIDFromContext
//   - Logs the method and duration at debug, and failures at warn
//   - Records request counts, durations, and in-flight requests in Metrics
//
// Example usage:
//
//	metrics := protocol.NewMetrics()
//	server.AddReceivingMiddleware(protocol.RequestLogging(log, metrics))
//	http.Handle("/metrics", metrics.Handler())
package protocol
