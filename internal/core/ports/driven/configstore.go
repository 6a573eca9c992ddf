package driven

// ConfigStore provides access to application configuration.
// Implementations must be safe for concurrent use.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns "" if the key is missing or not a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if the key is missing or not an integer.
	GetInt(key string) int

	// GetFloat retrieves a float configuration value.
	// Returns 0 if the key is missing or not a number.
	GetFloat(key string) float64

	// GetBool retrieves a boolean configuration value.
	// Returns false if the key is missing or not a boolean.
	GetBool(key string) bool

	// Set stores a configuration value.
	Set(key string, value any) error

	// Save persists the configuration.
	Save() error
}
