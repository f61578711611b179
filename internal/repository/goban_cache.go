package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"sgf_engine/internal/domain/record"
	errs "sgf_engine/internal/errors"
)

// GobanCache keeps computed positions of stored records in Redis as JSON.
type GobanCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGobanCache(client *redis.Client, ttl time.Duration) *GobanCache {
	return &GobanCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *GobanCache) GetGoban(ctx context.Context, key string) (*record.GobanView, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.ErrCacheMiss
		}
		return nil, err
	}

	var view record.GobanView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *GobanCache) SetGoban(ctx context.Context, key string, view *record.GobanView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}
