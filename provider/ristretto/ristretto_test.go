package ristretto

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{MaxBytes: 1 << 20, Metrics: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(ctx) })

	if _, ok, err := p.Get(ctx, "memo:t:a"); ok || err != nil {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	ok, err := p.Set(ctx, "memo:t:a", "d8ab19d5", time.Minute)
	if err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "memo:t:a")
	if err != nil || !ok || got != "d8ab19d5" {
		t.Fatalf("Get after Set: got %q ok=%v err=%v", got, ok, err)
	}
	if err := p.Del(ctx, "memo:t:a"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "memo:t:a"); ok {
		t.Fatalf("expected miss after Del")
	}
	if p.Metrics() == nil || p.Metrics().Hits() != 1 {
		t.Fatalf("metrics not recorded")
	}
}

func TestEntryLargerThanBudgetIsRejected(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{MaxBytes: 64})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close(ctx) })

	_, _ = p.Set(ctx, "big", strings.Repeat("d8", 64), 0)
	if _, ok, _ := p.Get(ctx, "big"); ok {
		t.Fatalf("entry over the byte budget must not be kept")
	}
}
