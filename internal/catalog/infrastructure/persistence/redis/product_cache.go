package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
	"github.com/wyfcoding/storefront/pkg/logger"
)

const (
	productKeyPrefix = "catalog:product:"
	productTTL       = 5 * time.Minute
)

// cachedProductRepository 商品仓储的 read-through 缓存装饰器。
// 只缓存 GetByID，写路径直通底层仓储并使缓存失效。
type cachedProductRepository struct {
	inner domain.ProductRepository
	cache *cache.RedisCache
}

func NewCachedProductRepository(inner domain.ProductRepository, c *cache.RedisCache) domain.ProductRepository {
	return &cachedProductRepository{inner: inner, cache: c}
}

func productKey(id uint) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, id)
}

func (r *cachedProductRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	hit, err := r.cache.GetJSON(ctx, productKey(id), &p)
	if err != nil {
		// 缓存故障时直接回源
		logger.Warn(ctx, "product cache read failed, falling back to db", "product_id", id, "error", err)
	} else if hit {
		return &p, nil
	}

	product, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetJSON(ctx, productKey(product.ID), product, productTTL); err != nil {
		logger.Warn(ctx, "product cache write failed", "product_id", product.ID, "error", err)
	}
	return product, nil
}

func (r *cachedProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if err := r.inner.Save(ctx, product); err != nil {
		return err
	}
	return r.cache.Delete(ctx, productKey(product.ID))
}

func (r *cachedProductRepository) Delete(ctx context.Context, id uint) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	return r.cache.Delete(ctx, productKey(id))
}

func (r *cachedProductRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	if err := r.inner.AdjustStock(ctx, id, delta); err != nil {
		return err
	}
	return r.cache.Delete(ctx, productKey(id))
}

func (r *cachedProductRepository) List(ctx context.Context, q domain.ProductQuery) ([]*domain.Product, int64, error) {
	return r.inner.List(ctx, q)
}
