package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventorySummaryKey(t *testing.T) {
	a := InventorySummaryKey("ds1", domain.InventoryFilter{Categories: []string{"B", "A"}, Status: domain.StatusBelowMinimum})
	b := InventorySummaryKey("ds1", domain.InventoryFilter{Categories: []string{"A", "B"}, Status: domain.StatusBelowMinimum})
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "fcd:dashboard:inventory:summary:ds1:"))

	assert.NotEqual(t, a, InventorySummaryKey("ds2", domain.InventoryFilter{Categories: []string{"A", "B"}, Status: domain.StatusBelowMinimum}))
	assert.NotEqual(t, a, InventorySummaryKey("ds1", domain.InventoryFilter{Categories: []string{"A"}, Status: domain.StatusBelowMinimum}))

	assert.Equal(t, "fcd:dashboard:inventory:summary:ds1:default", InventorySummaryKey("ds1", domain.InventoryFilter{}))
}

func TestSalesSummaryKeyDoesNotMutateFilter(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := domain.SalesFilter{Stores: []string{"L2", "L1"}, DateFrom: &from}
	key := SalesSummaryKey("ds", f)
	assert.Equal(t, []string{"L2", "L1"}, f.Stores)
	assert.Equal(t, key, SalesSummaryKey("ds", domain.SalesFilter{Stores: []string{"L1", "L2"}, DateFrom: &from}))
	assert.NotContains(t, key, "default")
}

func TestBuildRedisOptions(t *testing.T) {
	opts, err := redisOptions(config.CacheConfig{RedisHost: "cache", RedisPort: "6380", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = redisOptions(config.CacheConfig{RedisURL: "redis://:secret@localhost:6379/3"})
	require.NoError(t, err)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)

	_, err = redisOptions(config.CacheConfig{RedisURL: "://bad"})
	assert.Error(t, err)
}

func TestSummaryTTL(t *testing.T) {
	assert.Equal(t, time.Minute, summaryTTL(config.CacheConfig{}))
	assert.Equal(t, 90*time.Second, summaryTTL(config.CacheConfig{DashboardTTLSeconds: 90}))
}

func TestNoopCache(t *testing.T) {
	c, err := NewDashboardCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.SetInventorySummary(ctx, "ds", domain.InventoryFilter{}, &domain.InventorySummary{TotalRows: 1}))
	got, ok, err := c.GetInventorySummary(ctx, "ds", domain.InventoryFilter{})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.InvalidateAll(ctx))
}
