package domain

import (
	"context"
	"time"
)

// OrderCreatedEvent 下单成功后发布到消息队列的事件
type OrderCreatedEvent struct {
	OrderNo     string    `json:"order_no"`
	UserID      uint      `json:"user_id"`
	TotalAmount string    `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventPublisher 订单事件发布接口
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *OrderCreatedEvent) error
}
