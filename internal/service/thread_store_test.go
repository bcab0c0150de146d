package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"valor-assist/internal/dto"

	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClockedStore(ttl time.Duration) (*MemoryThreadStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryThreadStore(ttl, 0, zap.NewNop())
	store.now = clock.Now
	return store, clock
}

func TestMemoryThreadStoreExpires(t *testing.T) {
	ctx := context.Background()
	store, clock := newClockedStore(time.Minute)
	defer store.Close()

	if err := store.SaveThread(ctx, &StoredThread{ID: "sim-thread-1", Topic: "Claims"}); err != nil {
		t.Fatalf("SaveThread() error = %v", err)
	}

	clock.Advance(59 * time.Second)
	if _, err := store.GetThread(ctx, "sim-thread-1"); err != nil {
		t.Fatalf("GetThread() before TTL error = %v", err)
	}

	clock.Advance(time.Second)
	if _, err := store.GetThread(ctx, "sim-thread-1"); !errors.Is(err, ErrThreadNotFound) {
		t.Errorf("GetThread() after TTL error = %v, want ErrThreadNotFound", err)
	}
}

func TestMemoryThreadStoreAppendRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	store, clock := newClockedStore(time.Minute)
	defer store.Close()

	_ = store.SaveThread(ctx, &StoredThread{ID: "t"})
	clock.Advance(45 * time.Second)
	if err := store.AppendMessage(ctx, "t", &dto.ChatMessageResponse{ID: "m1", Content: "hello"}); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	clock.Advance(45 * time.Second)

	msgs, err := store.ListMessages(ctx, "t")
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Errorf("ListMessages() = %+v", msgs)
	}
}

func TestMemoryThreadStoreResaveAfterExpiry(t *testing.T) {
	ctx := context.Background()
	store, clock := newClockedStore(time.Minute)
	defer store.Close()

	_ = store.SaveThread(ctx, &StoredThread{ID: "t"})
	_ = store.AppendMessage(ctx, "t", &dto.ChatMessageResponse{ID: "m1", Content: "stale"})
	clock.Advance(2 * time.Minute)

	if err := store.SaveThread(ctx, &StoredThread{ID: "t", Topic: "Reopened"}); err != nil {
		t.Fatalf("SaveThread() error = %v", err)
	}
	msgs, err := store.ListMessages(ctx, "t")
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("ListMessages() = %+v, want expired messages dropped", msgs)
	}

	_ = store.AppendMessage(ctx, "t", &dto.ChatMessageResponse{ID: "m2", Content: "fresh"})
	if err := store.SaveThread(ctx, &StoredThread{ID: "t", Topic: "Renamed"}); err != nil {
		t.Fatalf("SaveThread() error = %v", err)
	}
	if msgs, _ := store.ListMessages(ctx, "t"); len(msgs) != 1 {
		t.Errorf("ListMessages() after live re-save = %d messages, want 1", len(msgs))
	}
}

func TestMemoryThreadStoreSweep(t *testing.T) {
	ctx := context.Background()
	store, clock := newClockedStore(time.Minute)
	defer store.Close()

	for _, id := range []string{"a", "b", "c"} {
		_ = store.SaveThread(ctx, &StoredThread{ID: id})
	}
	clock.Advance(30 * time.Second)
	_ = store.AppendMessage(ctx, "c", &dto.ChatMessageResponse{ID: "m"})
	clock.Advance(30 * time.Second)

	if removed := store.Sweep(); removed != 2 {
		t.Errorf("Sweep() = %d, want 2", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestMemoryThreadStoreUnknownThread(t *testing.T) {
	store, _ := newClockedStore(time.Minute)
	defer store.Close()

	err := store.AppendMessage(context.Background(), "missing", &dto.ChatMessageResponse{})
	if !errors.Is(err, ErrThreadNotFound) {
		t.Errorf("AppendMessage() error = %v, want ErrThreadNotFound", err)
	}
}

func TestRedisThreadStore(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	store, err := NewRedisThreadStore(ctx, redisURL, 2*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("NewRedisThreadStore() error = %v", err)
	}
	defer store.Close()

	id := "test-thread-" + time.Now().Format("150405.000000")
	if err := store.SaveThread(ctx, &StoredThread{ID: id, Topic: "redis"}); err != nil {
		t.Fatalf("SaveThread() error = %v", err)
	}
	if err := store.AppendMessage(ctx, id, &dto.ChatMessageResponse{ID: "m1", Content: "hi"}); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	msgs, err := store.ListMessages(ctx, id)
	if err != nil || len(msgs) != 1 {
		t.Fatalf("ListMessages() = %v, %v", msgs, err)
	}

	time.Sleep(2500 * time.Millisecond)
	if _, err := store.GetThread(ctx, id); !errors.Is(err, ErrThreadNotFound) {
		t.Errorf("GetThread() after TTL error = %v, want ErrThreadNotFound", err)
	}
}
