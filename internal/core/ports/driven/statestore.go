package driven

// StateStore is the durable medium for per-user state. It is a flat,
// string-only key-value store: every value is one JSON blob produced
// and consumed exclusively by the analytics codec. External code must
// never read or write these blobs directly.
type StateStore interface {
	// Get retrieves the blob stored under key.
	// The boolean reports whether the key exists.
	Get(key string) (string, bool, error)

	// Set stores the blob under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases any underlying resources.
	Close() error
}
