package redis

import (
	"context"
	"testing"
	"time"
)

type fakeClient struct {
	counts  map[string]int64
	expires map[string]time.Duration
}

func newFakeClient() *fakeClient {
	return &fakeClient{counts: make(map[string]int64), expires: make(map[string]time.Duration)}
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }
func (f *fakeClient) Incr(ctx context.Context, key string) (int64, error) {
	f.counts[key]++
	return f.counts[key], nil
}
func (f *fakeClient) Expire(ctx context.Context, key string, exp time.Duration) error {
	f.expires[key] = exp
	return nil
}
func (f *fakeClient) Close() error { return nil }

func TestRateLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	cli := newFakeClient()
	rl := NewRateLimiter(cli)
	key := RouteKey("10.0.0.1", "chat")

	for i := 0; i < 5; i++ {
		ok, err := rl.Allow(ctx, key, 5, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, err := rl.Allow(ctx, key, 5, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("sixth request must be rejected")
	}

	if cli.expires[key] != time.Minute {
		t.Errorf("expected the window set on first increment, got %v", cli.expires[key])
	}
}

func TestRateLimiter_IsolatesKeys(t *testing.T) {
	ctx := context.Background()
	rl := NewRateLimiter(newFakeClient())

	if ok, _ := rl.Allow(ctx, RouteKey("10.0.0.1", "verify"), 1, time.Minute); !ok {
		t.Fatal("first caller should be allowed")
	}
	if ok, _ := rl.Allow(ctx, RouteKey("10.0.0.2", "verify"), 1, time.Minute); !ok {
		t.Error("a different caller must have its own window")
	}
}
