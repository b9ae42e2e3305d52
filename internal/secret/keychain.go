package secret

import (
	"fmt"
	"os/exec"
	"strings"
)

const keychainService = "bouncecure-storage"

// KeychainStore implements Store using the macOS Keychain
// via the `security` CLI tool. Entries are generic passwords of the
// bouncecure-storage service, keyed by account name:
//
//	security add-generic-password -s bouncecure-storage -a prod-pg -w 'postgres://...'
type KeychainStore struct {
	run func(name string, args ...string) ([]byte, error)
}

// NewKeychainStore creates a new KeychainStore.
func NewKeychainStore() *KeychainStore {
	return &KeychainStore{run: func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).Output()
	}}
}

// Get retrieves a secret from the macOS Keychain.
// Returns empty slice and nil error if the key doesn't exist.
func (k *KeychainStore) Get(key string) ([]byte, error) {
	out, err := k.run("security", "find-generic-password",
		"-a", key,
		"-s", keychainService,
		"-w", // output only the password
	)
	if err != nil {
		// "security" returns exit code 44 when item not found; any other
		// exit status is treated the same so a locked keychain reads as empty
		if _, ok := err.(*exec.ExitError); ok {
			return nil, nil
		}
		return nil, fmt.Errorf("keychain get %s: %w", key, err)
	}
	return []byte(strings.TrimSpace(string(out))), nil
}
