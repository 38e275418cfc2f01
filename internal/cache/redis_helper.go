package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	defaultSummaryTTL = time.Minute
	redisPingTimeout  = 5 * time.Second
)

// dialRedis connects and pings once, so a misconfigured cache fails at startup
// instead of on the first dashboard request.
func dialRedis(cfg config.CacheConfig) (*redis.Client, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

// redisOptions prefers REDIS_URL and falls back to host, port and db
func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host, port := cfg.RedisHost, cfg.RedisPort
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func summaryTTL(cfg config.CacheConfig) time.Duration {
	if cfg.DashboardTTLSeconds <= 0 {
		return defaultSummaryTTL
	}
	return time.Duration(cfg.DashboardTTLSeconds) * time.Second
}

// unlinkPrefix removes every key under prefix, batching UNLINK calls as the scan
// iterator yields keys.
func unlinkPrefix(ctx context.Context, client *redis.Client, prefix string, batch int) (int, error) {
	var (
		removed int
		pending = make([]string, 0, batch)
	)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := client.Unlink(ctx, pending...).Err(); err != nil {
			return fmt.Errorf("redis unlink: %w", err)
		}
		removed += len(pending)
		pending = pending[:0]
		return nil
	}

	iter := client.Scan(ctx, 0, prefix+"*", int64(batch)).Iterator()
	for iter.Next(ctx) {
		pending = append(pending, iter.Val())
		if len(pending) >= batch {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan %s*: %w", prefix, err)
	}
	return removed, flush()
}
