package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderQuery 订单列表过滤条件
type OrderQuery struct {
	UserID uint
	Status Status
	Offset int
	Limit  int
}

type OrderRepository interface {
	// Create 在给定事务上下文中持久化订单及其行项目
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	List(ctx context.Context, q OrderQuery) ([]*Order, int64, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
	// RevenueTotal 已取消订单不计入
	RevenueTotal(ctx context.Context) (decimal.Decimal, error)
}
