package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryLoginGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("counts consecutive failures", func(t *testing.T) {
		guard := NewMemoryLoginGuard(time.Minute)

		for want := 1; want <= 3; want++ {
			got, err := guard.RecordFailure(ctx, "acct-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want {
				t.Errorf("failure %d: expected count %d, got %d", want, want, got)
			}
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		guard := NewMemoryLoginGuard(time.Minute)

		if _, err := guard.RecordFailure(ctx, "acct-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count, err := guard.Failures(ctx, "acct-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 failures for untouched key, got %d", count)
		}
	})

	t.Run("reset clears the counter", func(t *testing.T) {
		guard := NewMemoryLoginGuard(time.Minute)

		guard.RecordFailure(ctx, "acct-1")
		guard.RecordFailure(ctx, "acct-1")
		if err := guard.Reset(ctx, "acct-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count, err := guard.Failures(ctx, "acct-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 failures after reset, got %d", count)
		}
	})

	t.Run("window expiry restarts the count", func(t *testing.T) {
		guard := NewMemoryLoginGuard(20 * time.Millisecond)

		guard.RecordFailure(ctx, "acct-1")
		guard.RecordFailure(ctx, "acct-1")
		time.Sleep(30 * time.Millisecond)

		count, err := guard.Failures(ctx, "acct-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 0 {
			t.Errorf("expected expired counter to read 0, got %d", count)
		}

		got, err := guard.RecordFailure(ctx, "acct-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 1 {
			t.Errorf("expected count to restart at 1 after expiry, got %d", got)
		}
	})
}

func TestRedisLoginGuard(t *testing.T) {
	ctx := context.Background()

	newGuard := func(t *testing.T, window time.Duration) (*miniredis.Miniredis, *redisLoginGuard) {
		t.Helper()
		server := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: server.Addr()})
		t.Cleanup(func() { client.Close() })
		return server, NewRedisLoginGuard(client, window).(*redisLoginGuard)
	}

	t.Run("counts consecutive failures", func(t *testing.T) {
		_, guard := newGuard(t, time.Minute)

		for want := 1; want <= 3; want++ {
			got, err := guard.RecordFailure(ctx, "acct-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want {
				t.Errorf("failure %d: expected count %d, got %d", want, want, got)
			}
		}
	})

	t.Run("first failure opens the expiry window", func(t *testing.T) {
		server, guard := newGuard(t, time.Minute)

		guard.RecordFailure(ctx, "acct-1")
		ttl := server.TTL(loginFailureKeyPrefix + "acct-1")
		if ttl <= 0 || ttl > time.Minute {
			t.Errorf("expected a ttl within the window, got %v", ttl)
		}
	})

	t.Run("counter expires with the window", func(t *testing.T) {
		server, guard := newGuard(t, time.Minute)

		guard.RecordFailure(ctx, "acct-1")
		guard.RecordFailure(ctx, "acct-1")
		server.FastForward(2 * time.Minute)

		count, err := guard.Failures(ctx, "acct-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 0 {
			t.Errorf("expected expired counter to read 0, got %d", count)
		}
	})

	t.Run("reset clears the counter", func(t *testing.T) {
		_, guard := newGuard(t, time.Minute)

		guard.RecordFailure(ctx, "acct-1")
		if err := guard.Reset(ctx, "acct-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count, err := guard.Failures(ctx, "acct-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 failures after reset, got %d", count)
		}
	})

	t.Run("unknown key reads as zero", func(t *testing.T) {
		_, guard := newGuard(t, time.Minute)

		count, err := guard.Failures(ctx, "never-seen")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 failures for unknown key, got %d", count)
		}
	})
}
