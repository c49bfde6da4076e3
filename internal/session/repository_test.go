package session_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/xtding233/gacha-backend/internal/gacha"
	"github.com/xtding233/gacha-backend/internal/session"
	"github.com/xtding233/gacha-backend/internal/storage/memory"
)

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Put(context.Context, string, []byte) error   { return f.err }
func (f failingStore) Delete(context.Context, string) error        { return f.err }

func newRepo(t *testing.T, st session.Store) *session.Repository {
	t.Helper()
	repo, err := session.NewRepository(st, nil)
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	repo := newRepo(t, memory.New())
	st, err := repo.Load(context.Background(), session.GlobalKey)
	if err != nil {
		t.Fatal(err)
	}
	if st.DrawCount != 0 || st.TotalSpend != 0 {
		t.Fatalf("unexpected counters %d/%d", st.DrawCount, st.TotalSpend)
	}
	if !reflect.DeepEqual(st.Pool.Remaining(), gacha.DefaultPremiumItems()) || len(st.Pool.Collected()) != 0 {
		t.Fatalf("unexpected pool %v / %v", st.Pool.Remaining(), st.Pool.Collected())
	}
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, memory.New())
	st, _ := repo.Load(ctx, "k")
	st.DrawCount, st.TotalSpend = 12, 1100
	st.Pool.Record("Prize4")
	if err := repo.Save(ctx, "k", st); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Load(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got.DrawCount != 12 || got.TotalSpend != 1100 {
		t.Fatalf("unexpected counters %d/%d", got.DrawCount, got.TotalSpend)
	}
	if !reflect.DeepEqual(got.Pool.Collected(), []string{"Prize4"}) || len(got.Pool.Remaining()) != 9 {
		t.Fatalf("unexpected pool %v / %v", got.Pool.Remaining(), got.Pool.Collected())
	}
}

func TestLoadCorruptRecordFallsBackToDefaults(t *testing.T) {
	records := map[string]string{
		"garbage":  `not json`,
		"negative": `{"drawCount":-1,"totalSpend":0,"premiumRemaining":["Prize1","Prize2","Prize3","Prize4","Prize5","Prize6","Prize7","Prize8","Prize9","Prize10"],"premiumCollected":[]}`,
		"overlap":  `{"drawCount":1,"totalSpend":100,"premiumRemaining":["Prize1","Prize2","Prize3","Prize4","Prize5","Prize6","Prize7","Prize8","Prize9","Prize10"],"premiumCollected":["Prize1"]}`,
		"outsider": `{"drawCount":1,"totalSpend":100,"premiumRemaining":["Prize11"],"premiumCollected":[]}`,
		"spendNeg": `{"drawCount":1,"totalSpend":-100,"premiumRemaining":[],"premiumCollected":[]}`,
	}
	ctx := context.Background()
	store := memory.New()
	repo := newRepo(t, store)
	for key, body := range records {
		t.Run(key, func(t *testing.T) {
			if err := store.Put(ctx, key, []byte(body)); err != nil {
				t.Fatal(err)
			}
			st, err := repo.Load(ctx, key)
			if err != nil {
				t.Fatalf("corrupt record must not fail load: %v", err)
			}
			if st.DrawCount != 0 || len(st.Pool.Remaining()) != 10 {
				t.Fatalf("expected defaults, got %d draws, %d remaining", st.DrawCount, len(st.Pool.Remaining()))
			}
		})
	}
}

func TestDecodeReportsCorruptState(t *testing.T) {
	_, err := session.Decode("k", []byte(`{`), gacha.DefaultPremiumItems())
	var corrupt *session.CorruptStateError
	if !errors.As(err, &corrupt) || corrupt.Key != "k" {
		t.Fatalf("expected CorruptStateError for k, got %v", err)
	}
}

func TestStorageFailuresAreStorageErrors(t *testing.T) {
	boom := errors.New("disk full")
	repo := newRepo(t, failingStore{err: boom})
	ctx := context.Background()

	_, err := repo.Load(ctx, "k")
	var se *session.StorageError
	if !errors.As(err, &se) || se.Op != "load" || !errors.Is(err, boom) {
		t.Fatalf("expected load StorageError wrapping cause, got %v", err)
	}

	st, _ := session.NewState(gacha.DefaultPremiumItems())
	if err := repo.Save(ctx, "k", st); !errors.As(err, &se) || se.Op != "save" {
		t.Fatalf("expected save StorageError, got %v", err)
	}
	if _, err := repo.Reset(ctx, "k"); !errors.As(err, &se) || se.Op != "reset" {
		t.Fatalf("expected reset StorageError, got %v", err)
	}
}

func TestResetDeletesRecord(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := newRepo(t, store)
	st, _ := repo.Load(ctx, session.GlobalKey)
	st.DrawCount = 3
	if err := repo.Save(ctx, session.GlobalKey, st); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		got, err := repo.Reset(ctx, session.GlobalKey)
		if err != nil {
			t.Fatal(err)
		}
		if got.DrawCount != 0 || len(got.Pool.Remaining()) != 10 {
			t.Fatalf("reset %d: expected defaults", i)
		}
		if _, err := store.Get(ctx, session.GlobalKey); !errors.Is(err, session.ErrNotFound) {
			t.Fatalf("reset %d: record must be absent, got %v", i, err)
		}
	}
}

func TestSnapshotJSONFields(t *testing.T) {
	st, _ := session.NewState([]string{"A", "B"})
	st.Pool.Record("B")
	data, err := st.Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"drawCount":0,"totalSpend":0,"premiumRemaining":["A"],"premiumCollected":["B"]}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}
