package storage

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestListingCache_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	client.Del(ctx, invoiceListingKey)

	_, ok, err := adapter.GetInvoiceListing(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty cache")
	}

	payload := []byte(`[{"id":"inv-1"}]`)
	if err := adapter.SetInvoiceListing(ctx, payload); err != nil {
		t.Fatalf("SetInvoiceListing failed: %v", err)
	}

	got, ok, err := adapter.GetInvoiceListing(ctx)
	if err != nil {
		t.Fatalf("GetInvoiceListing failed: %v", err)
	}
	if !ok || !bytes.Equal(got, payload) {
		t.Errorf("expected cached payload %s, got %s (hit=%v)", payload, got, ok)
	}
}

func TestListingCache_Invalidate(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	if err := adapter.SetInvoiceListing(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("SetInvoiceListing failed: %v", err)
	}

	if err := adapter.InvalidateInvoiceListing(ctx); err != nil {
		t.Fatalf("InvalidateInvoiceListing failed: %v", err)
	}

	_, ok, err := adapter.GetInvoiceListing(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected miss after invalidation")
	}
}

func TestListingCache_InvalidateEmptyIsSafe(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	client.Del(ctx, invoiceListingKey)
	if err := adapter.InvalidateInvoiceListing(ctx); err != nil {
		t.Errorf("invalidating an absent key must not fail: %v", err)
	}
}
