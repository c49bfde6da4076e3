package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xtding233/gacha-backend/internal/storage/storetest"
)

func TestKeyPrefix(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:0"})
	defer client.Close()

	st := NewWithClient(client, time.Hour, "")
	if got := st.Key("global"); got != "gacha:session:global" {
		t.Fatalf("unexpected key %q", got)
	}
	st = NewWithClient(client, 0, "test:")
	if got := st.Key("abc"); got != "test:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

// Runs against a live server only when GACHA_TEST_REDIS_ADDR is set.
func TestLiveRoundTrip(t *testing.T) {
	addr := os.Getenv("GACHA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("GACHA_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	st, err := Open(ctx, Options{Addr: addr, TTL: time.Minute, Prefix: "gacha:test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	// Clear a record left behind by an earlier aborted run.
	if err := st.Delete(ctx, storetest.Key); err != nil {
		t.Fatal(err)
	}
	storetest.Exercise(t, st)
}
