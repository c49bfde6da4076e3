// Package draw runs single and batch draws against persisted session state.
package draw

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/xtding233/gacha-backend/internal/gacha"
	"github.com/xtding233/gacha-backend/internal/session"
	"github.com/xtding233/gacha-backend/internal/token"
)

// ResetMessage is returned by ResetAll.
const ResetMessage = "Reset complete"

// CompletionMessage formats the message shown once every premium item is collected.
func CompletionMessage(drawCount, totalSpend int) string {
	return fmt.Sprintf("All SR+ prizes collected! Total draws: %d, total spend: %d", drawCount, totalSpend)
}

// Result is what a caller renders after an operation.
type Result struct {
	Outcomes   []gacha.Outcome
	Message    string
	DrawCount  int
	TotalSpend int
	Remaining  []string
	Collected  []string
}

// Orchestrator performs draws for session keys. Each operation is a
// load -> mutate -> save critical section for its key; state is only
// committed when the save succeeds.
type Orchestrator struct {
	table atomic.Pointer[gacha.Table]
	repo  *session.Repository
	cost  token.Token
	rng   gacha.RandomSource

	mu    sync.Mutex
	locks map[string]*keyLock
}

// keyLock is dropped from the map once no caller holds or waits for it.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// New creates an Orchestrator. A nil rng uses the crypto source.
func New(table *gacha.Table, repo *session.Repository, cost token.Token, rng gacha.RandomSource) *Orchestrator {
	o := &Orchestrator{
		repo:  repo,
		cost:  cost,
		rng:   gacha.Synchronized(rng),
		locks: make(map[string]*keyLock),
	}
	o.table.Store(table)
	return o
}

// SetTable swaps the rarity table used by subsequent draws.
func (o *Orchestrator) SetTable(t *gacha.Table) {
	if t != nil {
		o.table.Store(t)
	}
}

// Table returns the active rarity table.
func (o *Orchestrator) Table() *gacha.Table { return o.table.Load() }

// Cost returns the draw prices.
func (o *Orchestrator) Cost() token.Token { return o.cost }

func (o *Orchestrator) lock(key string) func() {
	o.mu.Lock()
	l, ok := o.locks[key]
	if !ok {
		l = &keyLock{}
		o.locks[key] = l
	}
	l.refs++
	o.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		o.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(o.locks, key)
		}
		o.mu.Unlock()
	}
}

// heldLocks returns the number of session keys with a live lock entry.
func (o *Orchestrator) heldLocks() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.locks)
}

// RunSingle charges one single draw and performs it.
func (o *Orchestrator) RunSingle(ctx context.Context, key string) (Result, error) {
	unlock := o.lock(key)
	defer unlock()

	st, err := o.repo.Load(ctx, key)
	if err != nil {
		return Result{}, err
	}
	st.DrawCount++
	st.TotalSpend += o.cost.SingleCost()

	table := o.table.Load()
	engine := gacha.NewEngine(table, o.rng)
	out, err := engine.DrawOne(table.Single(), st.Pool)
	if err != nil {
		return Result{}, err
	}

	res := Result{Outcomes: []gacha.Outcome{out}}
	if out.Tier.Premium() && out.Completed {
		res.Message = CompletionMessage(st.DrawCount, st.TotalSpend)
	}
	return o.commit(ctx, key, st, res)
}

// RunBatch charges one batch: BatchRandomDraws weighted draws followed by
// the forced slot.
func (o *Orchestrator) RunBatch(ctx context.Context, key string) (Result, error) {
	unlock := o.lock(key)
	defer unlock()

	st, err := o.repo.Load(ctx, key)
	if err != nil {
		return Result{}, err
	}
	st.DrawCount += gacha.BatchSize
	st.TotalSpend += o.cost.BatchCost()

	table := o.table.Load()
	engine := gacha.NewEngine(table, o.rng)
	batch := table.Batch()

	outcomes := make([]gacha.Outcome, 0, gacha.BatchSize)
	completed := false
	for i := 0; i < gacha.BatchRandomDraws; i++ {
		out, err := engine.DrawOne(batch, st.Pool)
		if err != nil {
			return Result{}, err
		}
		if out.Tier.Premium() && out.Completed {
			completed = true
		}
		outcomes = append(outcomes, out)
	}
	outcomes = append(outcomes, engine.Forced())

	res := Result{Outcomes: outcomes}
	if completed || st.Pool.Complete() {
		res.Message = CompletionMessage(st.DrawCount, st.TotalSpend)
	}
	return o.commit(ctx, key, st, res)
}

// ResetAll deletes the persisted state for key and returns the defaults.
func (o *Orchestrator) ResetAll(ctx context.Context, key string) (Result, error) {
	unlock := o.lock(key)
	defer unlock()

	st, err := o.repo.Reset(ctx, key)
	if err != nil {
		return Result{}, err
	}
	return fill(Result{Message: ResetMessage}, st), nil
}

// Status returns the current progress without drawing.
func (o *Orchestrator) Status(ctx context.Context, key string) (Result, error) {
	unlock := o.lock(key)
	defer unlock()

	st, err := o.repo.Load(ctx, key)
	if err != nil {
		return Result{}, err
	}
	return fill(Result{}, st), nil
}

// commit persists st. On failure st is dropped, so the store keeps the
// previous snapshot and the draw is not retried.
func (o *Orchestrator) commit(ctx context.Context, key string, st *session.State, res Result) (Result, error) {
	if err := o.repo.Save(ctx, key, st); err != nil {
		return Result{}, err
	}
	return fill(res, st), nil
}

func fill(res Result, st *session.State) Result {
	res.DrawCount = st.DrawCount
	res.TotalSpend = st.TotalSpend
	res.Remaining = st.Pool.Remaining()
	res.Collected = st.Pool.Collected()
	return res
}

// IsStorageError reports whether err is a persistence failure.
func IsStorageError(err error) bool {
	var se *session.StorageError
	return errors.As(err, &se)
}
