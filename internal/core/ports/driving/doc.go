// Package driving defines the interfaces through which the CLI and MCP
// adapters invoke the core services.
package driving
