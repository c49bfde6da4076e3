// Package storetest holds the session.Store contract shared by every
// backend's tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/xtding233/gacha-backend/internal/session"
)

// Key is the record Exercise writes and removes.
const Key = "alice"

// Exercise runs the Store contract against a backend. The backend must not
// hold a record under Key.
func Exercise(t *testing.T, st session.Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := st.Get(ctx, Key); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.Put(ctx, Key, []byte(`{"drawCount":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := st.Put(ctx, Key, []byte(`{"drawCount":2}`)); err != nil {
		t.Fatal(err)
	}
	got, err := st.Get(ctx, Key)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"drawCount":2}` {
		t.Fatalf("put must overwrite, got %s", got)
	}
	if err := st.Delete(ctx, Key); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get(ctx, Key); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := st.Delete(ctx, Key); err != nil {
		t.Fatalf("deleting a missing record must succeed, got %v", err)
	}
}
