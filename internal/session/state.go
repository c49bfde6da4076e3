// Package session holds the mutable draw progress and its persistence.
package session

import (
	"encoding/json"

	"github.com/xtding233/gacha-backend/internal/gacha"
)

// State is the aggregate progress of one session.
type State struct {
	DrawCount  int
	TotalSpend int
	Pool       *gacha.PremiumPool
}

// NewState returns the default state: no draws, no spend, full pool.
func NewState(universe []string) (*State, error) {
	pool, err := gacha.NewPremiumPool(universe)
	if err != nil {
		return nil, err
	}
	return &State{Pool: pool}, nil
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	return &State{DrawCount: s.DrawCount, TotalSpend: s.TotalSpend, Pool: s.Pool.Clone()}
}

// Snapshot is the persisted record. Each save replaces it entirely.
type Snapshot struct {
	DrawCount        int      `json:"drawCount"`
	TotalSpend       int      `json:"totalSpend"`
	PremiumRemaining []string `json:"premiumRemaining"`
	PremiumCollected []string `json:"premiumCollected"`
}

// Snapshot captures the state for persistence.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		DrawCount:        s.DrawCount,
		TotalSpend:       s.TotalSpend,
		PremiumRemaining: s.Pool.Remaining(),
		PremiumCollected: s.Pool.Collected(),
	}
}

// Encode serializes the state's snapshot as JSON.
func (s *State) Encode() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// Decode parses a persisted record and validates it against universe.
// Any failure is a *CorruptStateError.
func Decode(key string, data []byte, universe []string) (*State, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &CorruptStateError{Key: key, Reason: "decode", Err: err}
	}
	if snap.DrawCount < 0 {
		return nil, &CorruptStateError{Key: key, Reason: "negative drawCount"}
	}
	if snap.TotalSpend < 0 {
		return nil, &CorruptStateError{Key: key, Reason: "negative totalSpend"}
	}
	pool, err := gacha.RestorePremiumPool(universe, snap.PremiumRemaining, snap.PremiumCollected)
	if err != nil {
		return nil, &CorruptStateError{Key: key, Reason: "premium sets", Err: err}
	}
	return &State{DrawCount: snap.DrawCount, TotalSpend: snap.TotalSpend, Pool: pool}, nil
}
