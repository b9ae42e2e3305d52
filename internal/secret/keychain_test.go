package secret

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeychainStore_Get(t *testing.T) {
	var gotArgs []string
	k := &KeychainStore{run: func(name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return []byte("postgres://bc@db/bc\n"), nil
	}}

	v, err := k.Get("prod-pg")
	require.NoError(t, err)
	assert.Equal(t, "postgres://bc@db/bc", string(v))
	assert.Equal(t, []string{"security", "find-generic-password", "-a", "prod-pg", "-s", keychainService, "-w"}, gotArgs)
}

func TestKeychainStore_MissingTool(t *testing.T) {
	k := &KeychainStore{run: func(string, ...string) ([]byte, error) {
		return nil, errors.New(`exec: "security": executable file not found in $PATH`)
	}}
	_, err := k.Get("prod-pg")
	assert.ErrorContains(t, err, "keychain get prod-pg")
}
