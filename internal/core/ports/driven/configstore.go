package driven

// ConfigStore holds the deck's persisted settings as dotted keys such as
// "documents.default_title". Typed getters return the zero value for a
// missing key or a value of another type; use Get to tell the two apart.
type ConfigStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)

	// GetString returns the string under key, or "".
	GetString(key string) string

	// GetInt returns the integer under key, or 0.
	GetInt(key string) int

	// GetBool returns the boolean under key, or false.
	GetBool(key string) bool

	// Set stores a value and persists it before returning.
	Set(key string, value any) error

	// Load discards cached values and rereads the backing storage.
	Load() error

	// Path names the backing storage for messages.
	Path() string
}
