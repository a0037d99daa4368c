package driven

// ConfigStore provides persistent key-value configuration.
// Keys use dot notation for nesting, e.g. "search.limit".
type ConfigStore interface {
	// Get retrieves a raw configuration value.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" when absent.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when absent.
	GetInt(key string) int

	// Set stores a value and persists it.
	Set(key string, value any) error

	// Path returns the backing file path.
	Path() string
}
