package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"rfphub/internal/model"
)

// ResponseCache keeps the joined per-RFP response listing in redis. Writers
// (the reconciler and the evaluation step) invalidate on every mutation, so a
// cached copy is at most responseTTL stale.
type ResponseCache struct {
	client      *redisv9.Client
	responseTTL time.Duration
}

func NewResponseCache(client *redisv9.Client, responseTTL time.Duration) *ResponseCache {
	if responseTTL <= 0 {
		responseTTL = 60 * time.Second
	}
	return &ResponseCache{
		client:      client,
		responseTTL: responseTTL,
	}
}

func (c *ResponseCache) GetResponses(ctx context.Context, rfpID uint) ([]model.VendorResponseView, bool, error) {
	raw, err := c.client.Get(ctx, c.key(rfpID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get responses failed: %w", err)
	}

	var views []model.VendorResponseView
	if err := json.Unmarshal([]byte(raw), &views); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached responses failed: %w", err)
	}
	return views, true, nil
}

func (c *ResponseCache) SetResponses(ctx context.Context, rfpID uint, views []model.VendorResponseView) error {
	payload, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("marshal response cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(rfpID), payload, c.responseTTL).Err(); err != nil {
		return fmt.Errorf("redis set responses failed: %w", err)
	}
	return nil
}

func (c *ResponseCache) Invalidate(ctx context.Context, rfpID uint) error {
	if err := c.client.Del(ctx, c.key(rfpID)).Err(); err != nil {
		return fmt.Errorf("redis delete responses failed: %w", err)
	}
	return nil
}

func (c *ResponseCache) key(rfpID uint) string {
	return fmt.Sprintf("rfp:responses:%d", rfpID)
}
