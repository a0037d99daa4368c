// Package driven defines the interfaces the core services depend on.
// Adapters (bundle loader, sqlite store, config files) implement these.
package driven
