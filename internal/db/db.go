package db

import (
	"context"
	"time"
)

// Store is the database facade. Consumers depend on the narrow sub-interfaces.
type Store interface {
	Pinger
	KVStore
	WindowCounter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// WindowResult is the server-side outcome of one fixed-window increment.
type WindowResult struct {
	Admitted bool
	Count    int64
	ResetAt  time.Time
}

// WindowCounter runs the fixed-window admission step atomically on the server.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (WindowResult, error)
}
