package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/cache"
)

const keyPrefix = "cart:"

// cartSnapshot Redis 中持久化的购物车快照结构
type cartSnapshot struct {
	Items []domain.LineItem `json:"items"`
}

type cartRepository struct {
	cache *cache.RedisCache
}

// NewCartRepository 创建基于 Redis 的购物车仓储。
// 快照以单个 key 整体覆盖写入，没有增量格式。
func NewCartRepository(c *cache.RedisCache) domain.CartRepository {
	return &cartRepository{cache: c}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}

func (r *cartRepository) Load(ctx context.Context, userID uint) (*domain.Cart, error) {
	val, err := r.cache.Get(ctx, cartKey(userID))
	if err != nil {
		return nil, err
	}
	if val == "" {
		return domain.NewCart(userID), nil
	}

	cart, err := unmarshalCart(userID, []byte(val))
	if err != nil {
		return nil, fmt.Errorf("corrupt cart snapshot for user %d: %w", userID, err)
	}
	return cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := marshalCart(cart)
	if err != nil {
		return err
	}
	// 购物车无 TTL，与会话生命周期解耦，跨重启存活
	return r.cache.Set(ctx, cartKey(cart.UserID), data, 0)
}

func (r *cartRepository) Delete(ctx context.Context, userID uint) error {
	return r.cache.Delete(ctx, cartKey(userID))
}

func marshalCart(cart *domain.Cart) ([]byte, error) {
	return json.Marshal(cartSnapshot{Items: cart.Items})
}

func unmarshalCart(userID uint, data []byte) (*domain.Cart, error) {
	var snap cartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &domain.Cart{UserID: userID, Items: snap.Items}, nil
}
