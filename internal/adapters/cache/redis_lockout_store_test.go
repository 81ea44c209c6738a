package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *RedisLockoutStore {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLockoutStore(client)
}

func TestLockoutStoreEmptyState(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	state, err := store.Get(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if state.FailedCount != 0 || state.LockedUntil != nil {
		t.Fatalf("expected zero state, got %+v", state)
	}
}

func TestLockoutStoreLocksAtThreshold(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		state, err := store.RecordFailure(ctx, "victim", now, 5, 30*time.Minute)
		if err != nil {
			t.Fatalf("record failure %d: %v", i, err)
		}
		if state.LockedUntil != nil {
			t.Fatalf("locked before threshold at attempt %d", i+1)
		}
	}

	state, err := store.RecordFailure(ctx, "victim", now, 5, 30*time.Minute)
	if err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if state.FailedCount != 5 {
		t.Fatalf("failed count = %d, want 5", state.FailedCount)
	}
	if state.LockedUntil == nil {
		t.Fatal("expected lockout at threshold")
	}
	if got, want := *state.LockedUntil, now.Add(30*time.Minute); !got.Equal(want) {
		t.Fatalf("locked until %v, want %v", got, want)
	}

	read, err := store.Get(ctx, "victim")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if read.LockedUntil == nil || !read.LockedUntil.Equal(*state.LockedUntil) {
		t.Fatalf("persisted state %+v does not match recorded lockout", read)
	}
}

func TestLockoutStoreClear(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := store.RecordFailure(ctx, "victim", now, 1, time.Hour); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if err := store.Clear(ctx, "victim"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	state, err := store.Get(ctx, "victim")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if state.FailedCount != 0 || state.LockedUntil != nil {
		t.Fatalf("expected cleared state, got %+v", state)
	}
}
