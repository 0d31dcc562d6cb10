package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLoginThrottle_Key(t *testing.T) {
	th := NewLoginThrottle(nil, 5, time.Minute)
	if got := th.key("  alice "); got != "login:failures:alice" {
		t.Fatalf("unexpected key: %s", got)
	}
	if th.key("ALICE") == th.key("alice") {
		t.Fatalf("usernames differing in case must not share a counter")
	}
}

// Requires a Redis instance, e.g. TEST_REDIS_ADDR=localhost:6379.
func TestLoginThrottle_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	th := NewLoginThrottle(client, 2, time.Minute)
	username := "throttle-" + uuid.NewString()
	t.Cleanup(func() { _ = th.Reset(ctx, username) })

	if blocked, err := th.Blocked(ctx, username); err != nil || blocked {
		t.Fatalf("fresh username must not be blocked: %v %v", blocked, err)
	}
	for i := 0; i < 2; i++ {
		if err := th.RecordFailure(ctx, username); err != nil {
			t.Fatalf("RecordFailure: %v", err)
		}
	}
	if blocked, err := th.Blocked(ctx, username); err != nil || !blocked {
		t.Fatalf("expected block after 2 failures: %v %v", blocked, err)
	}

	ttl, err := client.TTL(ctx, th.key(username)).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected window ttl, got %v %v", ttl, err)
	}

	if err := th.Reset(ctx, username); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if blocked, _ := th.Blocked(ctx, username); blocked {
		t.Fatalf("expected reset to unblock")
	}
}
