package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/order/domain"
	"gorm.io/gorm"
)

type orderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("order_no = ?", orderNo).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, q domain.OrderQuery) ([]*domain.Order, int64, error) {
	var orders []*domain.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Order{})
	if q.UserID != 0 {
		query = query.Where("user_id = ?", q.UserID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Items").Order("created_at DESC").Offset(q.Offset).Limit(q.Limit).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status domain.Status) error {
	return r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", status).Error
}

func (r *orderRepository) RevenueTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("status <> ?", domain.StatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}
