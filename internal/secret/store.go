// Package secret looks up credentials that should not live in config.yaml,
// such as database connection strings.
package secret

// Store provides read access to named secrets.
type Store interface {
	// Get retrieves the secret value for the given key.
	// Returns empty slice and nil error if key does not exist.
	Get(key string) ([]byte, error)
}
