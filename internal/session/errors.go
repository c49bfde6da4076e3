package session

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Store when no record exists for a key.
var ErrNotFound = errors.New("session record not found")

// StorageError reports a persistence read/write failure. The mutation that
// triggered it has not been committed.
type StorageError struct {
	Op  string // "load", "save", "reset"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("session %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// CorruptStateError reports a persisted record that cannot be decoded or
// violates the state invariants. Load treats it as an absent record.
type CorruptStateError struct {
	Key    string
	Reason string
	Err    error
}

func (e *CorruptStateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt session %q: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt session %q: %s", e.Key, e.Reason)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }
