package myredis

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisConfig selects the shared Redis registry store. An empty Addr means the in-memory store is used.
type RedisConfig struct {
	// Addr is a redis:// or rediss:// URL, or a bare host:port.
	Addr string
}

// NewRedisUniversalClient builds a client for a single Redis node from redisAddr.
// A bare host:port is treated as redis://host:port.
func NewRedisUniversalClient(redisAddr string, options ...ConfigOption) (redis.UniversalClient, error) {
	if !strings.Contains(redisAddr, "://") {
		redisAddr = "redis://" + redisAddr
	}
	opts, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(opts)
	}

	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{opts.Addr},
		DB:           opts.DB,
		Username:     opts.Username,
		Password:     opts.Password,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		MaxRetries:   opts.MaxRetries,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		TLSConfig:    opts.TLSConfig,
	}), nil
}

// ConfigOption adjusts the parsed options before the client is built.
type ConfigOption func(*redis.Options)

// WithOperationTimeout bounds dialing and every read and write.
func WithOperationTimeout(d time.Duration) ConfigOption {
	return func(o *redis.Options) {
		o.DialTimeout = d
		o.ReadTimeout = d
		o.WriteTimeout = d
	}
}

// WithPoolSize sets the maximum number of pooled connections.
func WithPoolSize(n int) ConfigOption {
	return func(o *redis.Options) {
		o.PoolSize = n
	}
}
