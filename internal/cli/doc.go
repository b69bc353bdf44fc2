// Package cli implements the mcp-demo-server command line.
//
// Configuration is resolved in this order, later sources winning:
//  1. Built-in defaults
//  2. MCP_DEMO_* environment variables
//  3. Flags set on the command line
//
// Execute returns the process exit code:
//   - 0 when the client disconnects or the process is interrupted
//   - 1 when the transport fails to connect or serving fails
//   - 2 when the flags or configuration are invalid
//
// Diagnostics are written to stderr only; with the stdio transport, stdout
// carries nothing but protocol frames.
package cli
