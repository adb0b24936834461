/*
Package storage is the client's local storage: a tiny persistent key/value space that
holds the credential pair between runs, playing the part a browser's localStorage plays
for a web front end.
*/
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// KeyTokenType stores the Authorization scheme of the current token pair.
	KeyTokenType = "token_type"

	// KeyAccessToken stores the current access token.
	KeyAccessToken = "access_token"
)

// Store defines the local storage interface. Writes are last-write-wins.
type Store interface {
	// Get returns the value of key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// SetMany stores all values at once: either every key is written or none is.
	SetMany(values map[string]string) error

	// Remove deletes the given keys; missing keys are ignored.
	Remove(keys ...string) error

	// Close releases the store.
	Close() error
}

// NewStore opens the file-backed store at path, creating parent directories as needed.
func NewStore(path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return newBoltStore(path)
}
