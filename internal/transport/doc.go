// Package transport serves an MCP server over streamable HTTP.
//
// The HTTP surface is:
//   - /mcp      the go-sdk streamable HTTP handler (GET, POST, DELETE)
//   - /metrics  Prometheus metrics, when a metrics handler is supplied
//   - /healthz  liveness probe
//
// Stdio needs no wrapper here: the server connects to mcp.StdioTransport
// directly.
package transport
