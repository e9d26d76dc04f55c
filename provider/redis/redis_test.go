package redis

import (
	"context"
	"errors"
	"testing"

	goredis "github.com/redis/go-redis/v9"
)

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("expected ErrNilClient, got %v", err)
	}
}

func TestCloseLeavesBorrowedClientOpen(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	p, err := New(Config{Client: rdb})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// client still usable for Close by its owner
	if err := rdb.Close(); err != nil {
		t.Fatalf("owner Close: %v", err)
	}
}

func TestOwnedCloseIsIdempotent(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	p, err := New(Config{Client: rdb, CloseClient: true})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := p.Close(ctx); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := p.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestDialRejectsBadURL(t *testing.T) {
	if _, err := Dial(context.Background(), "memcached://localhost"); err == nil {
		t.Fatalf("expected error for non-redis URL")
	}
}

func TestUnreachableServerSurfacesErrors(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	p, err := New(Config{Client: rdb, CloseClient: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	ctx := context.Background()
	if _, ok, err := p.Get(ctx, "memo:t:a"); ok || err == nil {
		t.Fatalf("expected error on Get, ok=%v err=%v", ok, err)
	}
	if ok, err := p.Set(ctx, "memo:t:a", "d8d8", 0); ok || err == nil {
		t.Fatalf("expected error on Set, ok=%v err=%v", ok, err)
	}
}
