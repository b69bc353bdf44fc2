// Package config holds the server's process configuration.
//
// Values are read from MCP_DEMO_* environment variables first; the CLI
// then overrides them with any flags set explicitly.
package config
