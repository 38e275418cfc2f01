package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dashboardKeyPrefix       = "fcd:dashboard"
	inventorySummaryKeyScope = "inventory:summary"
	salesSummaryKeyScope     = "sales:summary"
	scanBatchSize            = 100
)

// DashboardCache stores computed summaries. Keys include the dataset key, so a
// reload of the source files never serves a stale summary.
type DashboardCache interface {
	GetInventorySummary(ctx context.Context, datasetKey string, filter domain.InventoryFilter) (*domain.InventorySummary, bool, error)
	SetInventorySummary(ctx context.Context, datasetKey string, filter domain.InventoryFilter, summary *domain.InventorySummary) error
	GetSalesSummary(ctx context.Context, datasetKey string, filter domain.SalesFilter) (*domain.SalesSummary, bool, error)
	SetSalesSummary(ctx context.Context, datasetKey string, filter domain.SalesFilter, summary *domain.SalesSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

// NewDashboardCache returns a redis-backed cache, or a noop one when caching is disabled
func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, err := dialRedis(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{
		client: client,
		ttl:    summaryTTL(cfg),
	}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) GetInventorySummary(ctx context.Context, datasetKey string, filter domain.InventoryFilter) (*domain.InventorySummary, bool, error) {
	var summary domain.InventorySummary
	ok, err := c.get(ctx, InventorySummaryKey(datasetKey, filter), &summary)
	if !ok || err != nil {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *redisDashboardCache) SetInventorySummary(ctx context.Context, datasetKey string, filter domain.InventoryFilter, summary *domain.InventorySummary) error {
	return c.set(ctx, InventorySummaryKey(datasetKey, filter), summary)
}

func (c *redisDashboardCache) GetSalesSummary(ctx context.Context, datasetKey string, filter domain.SalesFilter) (*domain.SalesSummary, bool, error) {
	var summary domain.SalesSummary
	ok, err := c.get(ctx, SalesSummaryKey(datasetKey, filter), &summary)
	if !ok || err != nil {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *redisDashboardCache) SetSalesSummary(ctx context.Context, datasetKey string, filter domain.SalesFilter, summary *domain.SalesSummary) error {
	return c.set(ctx, SalesSummaryKey(datasetKey, filter), summary)
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	removed, err := unlinkPrefix(ctx, c.client, dashboardKeyPrefix+":", scanBatchSize)
	if err != nil {
		return err
	}
	log.Debug().Int("keys", removed).Msg("dashboard cache invalidated")
	return nil
}

func (c *redisDashboardCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode dashboard cache %s: %w", key, err)
	}
	return true, nil
}

func (c *redisDashboardCache) set(ctx context.Context, key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode dashboard cache %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopDashboardCache) GetInventorySummary(context.Context, string, domain.InventoryFilter) (*domain.InventorySummary, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetInventorySummary(context.Context, string, domain.InventoryFilter, *domain.InventorySummary) error {
	return nil
}

func (n *noopDashboardCache) GetSalesSummary(context.Context, string, domain.SalesFilter) (*domain.SalesSummary, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetSalesSummary(context.Context, string, domain.SalesFilter, *domain.SalesSummary) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(context.Context) error {
	return nil
}

// InventorySummaryKey builds the cache key for an inventory summary. Selections are
// sorted first since their order does not change the result.
func InventorySummaryKey(datasetKey string, filter domain.InventoryFilter) string {
	filter.Categories = sortedCopy(filter.Categories)
	filter.Brands = sortedCopy(filter.Brands)
	filter.Locations = sortedCopy(filter.Locations)
	return buildKey(inventorySummaryKeyScope, datasetKey, filter)
}

// SalesSummaryKey builds the cache key for a sales summary
func SalesSummaryKey(datasetKey string, filter domain.SalesFilter) string {
	filter.Stores = sortedCopy(filter.Stores)
	filter.Products = sortedCopy(filter.Products)
	filter.Categories = sortedCopy(filter.Categories)
	filter.Brands = sortedCopy(filter.Brands)
	filter.Channels = sortedCopy(filter.Channels)
	filter.PaymentMethods = sortedCopy(filter.PaymentMethods)
	return buildKey(salesSummaryKeyScope, datasetKey, filter)
}

func buildKey(scope, datasetKey string, filter interface{}) string {
	raw, err := json.Marshal(filter)
	if err != nil || string(raw) == "{}" {
		return fmt.Sprintf("%s:%s:%s:default", dashboardKeyPrefix, scope, datasetKey)
	}
	hash := sha1.Sum(raw)
	return fmt.Sprintf("%s:%s:%s:%s", dashboardKeyPrefix, scope, datasetKey, hex.EncodeToString(hash[:]))
}

func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
