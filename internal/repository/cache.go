package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache 报表结果的 Redis 缓存，按报表类型和时间窗口作为键
// client 为 nil 时所有操作直接穿透
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache 连接 Redis，redisURL 为空时返回禁用缓存
func NewReportCache(ctx context.Context, redisURL string, ttl time.Duration) (*ReportCache, error) {
	if redisURL == "" {
		return &ReportCache{ttl: ttl}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &ReportCache{client: client, ttl: ttl}, nil
}

// Enabled 缓存是否可用
func (c *ReportCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭 Redis 连接
func (c *ReportCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// Key 根据报表类型和时间窗口生成缓存键
func (c *ReportCache) Key(report string, start, end time.Time) string {
	return fmt.Sprintf("report:%s:%d:%d", report, start.UnixMilli(), end.UnixMilli())
}

// Get 读取缓存并反序列化到 dest，未命中返回 false
func (c *ReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set 序列化并写入缓存
func (c *ReportCache) Set(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
