// Package geocache provides shared geocode memo stores.
package geocache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/MakerMama/afterschool-finder/core/geocode"
)

// DefaultPrefix namespaces geocode keys in a shared Redis database.
const DefaultPrefix = "afterschool:geocode:"

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string        `json:"addr"`
	Password string        `json:"password"`
	DB       int           `json:"db"`
	Prefix   string        `json:"prefix"`
	TTL      time.Duration `json:"ttl"`
}

// RedisStore keeps geocode entries in Redis so that several server
// processes share one memo and one provider quota.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewRedisStoreWithClient(client, cfg.Prefix, cfg.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client. A zero ttl keeps entries
// forever.
func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the entry stored for address.
func (s *RedisStore) Get(ctx context.Context, address string) (geocode.Entry, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+address).Bytes()
	if errors.Is(err, redis.Nil) {
		return geocode.Entry{}, false, nil
	}
	if err != nil {
		return geocode.Entry{}, false, fmt.Errorf("redis get: %w", err)
	}
	var e geocode.Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return geocode.Entry{}, false, fmt.Errorf("decode geocode entry: %w", err)
	}
	return e, true, nil
}

// Set stores e under address.
func (s *RedisStore) Set(ctx context.Context, address string, e geocode.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode geocode entry: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+address, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *RedisStore) Close() error { return s.client.Close() }
