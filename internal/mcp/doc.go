// Package mcp implements the dispatch surface of the demo Model Context Protocol server.
//
// It keeps three registries, one each for tools, resources, and prompts, keyed by
// name (or URI for resources). Entries are registered once at startup and are
// read-only afterwards. Each registry dispatches a request to the matching entry
// after validating its arguments, so the same entries can be invoked
// programmatically or through the official MCP SDK server they are mounted on.
//
// The dispatch rules are:
//   - An unknown name fails with errors.UnknownOperationError
//   - Arguments that do not match the declared input shape fail with
//     errors.InvalidArgumentsError listing every violating field
//   - A tool handler error is converted into an error CallToolResult and never
//     escapes as a protocol fault
package mcp
