package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/cart/domain"
)

// CartApplicationService 购物车应用服务。
// 纯状态转换由 domain.Cart 承担，这里负责加载快照、应用转换并在每次变更后持久化。
type CartApplicationService struct {
	repo domain.CartRepository
}

func NewCartApplicationService(repo domain.CartRepository) *CartApplicationService {
	return &CartApplicationService{repo: repo}
}

// GetCart 获取用户购物车，从不失败于"不存在"：缺失快照即空购物车
func (s *CartApplicationService) GetCart(ctx context.Context, userID uint) (*domain.Cart, error) {
	return s.repo.Load(ctx, userID)
}

// AddItem 加入商品，重复加入时数量合并
func (s *CartApplicationService) AddItem(ctx context.Context, userID uint, snapshot domain.ProductSnapshot, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		c.AddItem(snapshot, quantity)
	})
}

// SetQuantity 设置行项目数量，<= 0 视为删除，未知商品为 no-op
func (s *CartApplicationService) SetQuantity(ctx context.Context, userID uint, productID uint, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		c.SetQuantity(productID, quantity)
	})
}

// RemoveItem 删除行项目，未知商品为 no-op
func (s *CartApplicationService) RemoveItem(ctx context.Context, userID uint, productID uint) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) {
		c.RemoveItem(productID)
	})
}

// ClearCart 清空购物车。结账成功后由调用方显式触发。
func (s *CartApplicationService) ClearCart(ctx context.Context, userID uint) error {
	return s.repo.Delete(ctx, userID)
}

// mutate 加载 -> 纯转换 -> 整体覆盖保存。持久化紧跟在内存变更之后。
func (s *CartApplicationService) mutate(ctx context.Context, userID uint, fn func(*domain.Cart)) (*domain.Cart, error) {
	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	fn(cart)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
