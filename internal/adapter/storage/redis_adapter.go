package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const invoiceListingKey = "listing:invoices"

// RedisAdapter caches the rendered invoices listing. A mutation drops the
// key; the next listing read repopulates it.
type RedisAdapter struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAdapter(client *redis.Client, ttl time.Duration) *RedisAdapter {
	return &RedisAdapter{client: client, ttl: ttl}
}

func (r *RedisAdapter) GetInvoiceListing(ctx context.Context) ([]byte, bool, error) {
	payload, err := r.client.Get(ctx, invoiceListingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (r *RedisAdapter) SetInvoiceListing(ctx context.Context, payload []byte) error {
	return r.client.Set(ctx, invoiceListingKey, payload, r.ttl).Err()
}

func (r *RedisAdapter) InvalidateInvoiceListing(ctx context.Context) error {
	return r.client.Del(ctx, invoiceListingKey).Err()
}
