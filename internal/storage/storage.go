// Package storage selects a session store backend.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/xtding233/gacha-backend/internal/session"
	"github.com/xtding233/gacha-backend/internal/storage/file"
	"github.com/xtding233/gacha-backend/internal/storage/memory"
	"github.com/xtding233/gacha-backend/internal/storage/redis"
	"github.com/xtding233/gacha-backend/internal/storage/sqlite"
)

// Backend names.
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
)

// Options configures Open.
type Options struct {
	Kind       string
	Dir        string // file backend directory
	SQLitePath string
	Redis      redis.Options
}

// Open returns the configured store and a function releasing its resources.
func Open(ctx context.Context, opts Options) (session.Store, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case KindMemory:
		return memory.New(), noop, nil
	case KindFile, "":
		st, err := file.New(opts.Dir)
		if err != nil {
			return nil, noop, err
		}
		return st, noop, nil
	case KindSQLite:
		st, err := sqlite.Open(opts.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return st, st.Close, nil
	case KindRedis:
		st, err := redis.Open(ctx, opts.Redis)
		if err != nil {
			return nil, noop, err
		}
		return st, st.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q (want memory, file, sqlite or redis)", opts.Kind)
	}
}
