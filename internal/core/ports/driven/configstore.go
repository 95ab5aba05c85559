package driven

// ConfigStore provides access to application configuration. The keys
// the application understands are declared by the file adapter;
// implementations handle persistence and type conversion.
type ConfigStore interface {
	// GetString retrieves a string value. Returns "" if the key is
	// missing or holds a different type.
	GetString(key string) string

	// GetInt retrieves an integer value. Returns 0 if the key is
	// missing or holds a different type.
	GetInt(key string) int

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Path returns the location backing the store, for display.
	Path() string
}
