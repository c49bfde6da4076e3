package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Store persists one raw record per session key.
type Store interface {
	// Get returns the record for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the record for key.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the record for key. A missing record is not an error.
	Delete(ctx context.Context, key string) error
}

// GlobalKey is the key of the single process-wide session.
const GlobalKey = "global"

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]{0,127}$`)

// ErrInvalidKey is returned for session keys outside [A-Za-z0-9._-]{1,128}
// or starting with a dot. Such keys could escape a file store's directory.
var ErrInvalidKey = errors.New("invalid session key")

// ValidateKey checks that key can be used by every Store backend.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
