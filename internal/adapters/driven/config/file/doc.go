// Package file provides TOML-backed configuration for the wwdc CLI,
// including the user-extensible synonym table consumed by the search
// engine's query expansion.
package file
