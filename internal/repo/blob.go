// Package repo contains all persistence logic for the trip checklist service.
// The trip collection is stored as one opaque payload under a fixed key of a
// key-value blob store; this file defines that collaborator and each backend
// lives in its own file. No business logic lives here.
package repo

import (
	"context"
	"fmt"
	"regexp"
)

// BlobStore is the key-value collaborator the trip repository writes through.
// Implementations must make Set atomic: a reader sees either the previous
// payload or the new one, never a partial write.
type BlobStore interface {
	// Get returns the payload stored under key. found is false, with a nil
	// error, when nothing has been stored yet.
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)

	// Set replaces the payload stored under key.
	Set(ctx context.Context, key string, payload []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// validateKey rejects keys that are empty or could escape a directory when
// used as a file name.
func validateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
