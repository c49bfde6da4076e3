package session

import (
	"context"
	"errors"
	"log"

	"github.com/xtding233/gacha-backend/internal/gacha"
)

// Repository loads, saves and resets session state against a Store.
type Repository struct {
	store    Store
	universe []string
}

// NewRepository creates a repository. A nil universe uses the default
// premium items.
func NewRepository(store Store, universe []string) (*Repository, error) {
	if len(universe) == 0 {
		universe = gacha.DefaultPremiumItems()
	}
	// fail fast on a bad universe
	if _, err := gacha.NewPremiumPool(universe); err != nil {
		return nil, err
	}
	return &Repository{store: store, universe: append([]string(nil), universe...)}, nil
}

// Universe returns the premium items states are validated against.
func (r *Repository) Universe() []string { return append([]string(nil), r.universe...) }

func (r *Repository) defaults() *State {
	st, _ := NewState(r.universe) // universe checked in NewRepository
	return st
}

// Load returns the persisted state for key. A missing or corrupt record
// yields the default state.
func (r *Repository) Load(ctx context.Context, key string) (*State, error) {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return r.defaults(), nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Key: key, Err: err}
	}
	st, err := Decode(key, data, r.universe)
	if err != nil {
		log.Printf("session: %v; starting from defaults", err)
		return r.defaults(), nil
	}
	return st, nil
}

// Save overwrites the persisted state for key.
func (r *Repository) Save(ctx context.Context, key string, st *State) error {
	data, err := st.Encode()
	if err != nil {
		return &StorageError{Op: "save", Key: key, Err: err}
	}
	if err := r.store.Put(ctx, key, data); err != nil {
		return &StorageError{Op: "save", Key: key, Err: err}
	}
	return nil
}

// Reset deletes the persisted state for key and returns the default state.
func (r *Repository) Reset(ctx context.Context, key string) (*State, error) {
	if err := r.store.Delete(ctx, key); err != nil {
		return nil, &StorageError{Op: "reset", Key: key, Err: err}
	}
	return r.defaults(), nil
}
