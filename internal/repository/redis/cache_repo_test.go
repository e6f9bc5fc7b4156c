package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-admin/internal/cfg"
	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/internal/repository/redis/converter"
	"github.com/DRSN-tech/catalog-admin/pkg/clients"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisCfg := &cfg.RedisCfg{
		Enabled:     true,
		Addr:        mr.Addr(),
		DialTimeout: time.Second,
		Timeout:     time.Second,
		ProductTTL:  time.Minute,
	}

	client := clients.NewRedisClient(redisCfg)
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheRepo(client, converter.NewProductConverterImpl(), redisCfg, logger.NewNopLogger()), mr
}

func TestCacheRepo_SetGetRoundTrip(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	product := domain.Product{
		ID:        3,
		Category:  domain.CategoryJackets,
		Name:      "Parka",
		Price:     199.99,
		ImagePath: "/images/parka.png",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, cache.SetProduct(ctx, product))

	assert.True(t, mr.Exists("product:3"))
	assert.Equal(t, time.Minute, mr.TTL("product:3"))

	got, err := cache.GetProduct(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, product, *got)
}

func TestCacheRepo_MissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t)

	got, err := cache.GetProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepo_CorruptEntryIsDropped(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("product:9", "{not json"))

	got, err := cache.GetProduct(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("product:9"))
}

func TestCacheRepo_IDMismatchIsDropped(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("product:1", `{"id":2,"category":"Shirts"}`))

	got, err := cache.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("product:1"))
}

func TestCacheRepo_DeleteProducts(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetProduct(ctx, domain.Product{ID: 1, Category: domain.CategoryShirts}))
	require.NoError(t, cache.SetProduct(ctx, domain.Product{ID: 2, Category: domain.CategoryShirts}))

	require.NoError(t, cache.DeleteProducts(ctx, []int64{1, 2, 3}))
	assert.False(t, mr.Exists("product:1"))
	assert.False(t, mr.Exists("product:2"))

	require.NoError(t, cache.DeleteProducts(ctx, nil))
}

func TestCacheRepo_ServerDownReturnsError(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	_, err := cache.GetProduct(context.Background(), 1)
	assert.Error(t, err)
}
