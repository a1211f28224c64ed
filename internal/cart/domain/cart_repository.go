package domain

import "context"

// CartRepository 购物车快照仓储。每次变更后整体覆盖写入，启动/首次访问时整体加载。
type CartRepository interface {
	// Load 加载用户购物车，不存在时返回空购物车
	Load(ctx context.Context, userID uint) (*Cart, error)
	// Save 整体覆盖保存购物车快照
	Save(ctx context.Context, cart *Cart) error
	// Delete 删除用户购物车快照
	Delete(ctx context.Context, userID uint) error
}
