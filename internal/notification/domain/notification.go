package domain

import (
	"context"

	"gorm.io/gorm"
)

// Channel 通知渠道
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Status 通知投递状态
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

// Notification 通知记录。每条下单事件对应一条通知，投递结果回写状态。
type Notification struct {
	gorm.Model
	UserID  uint    `gorm:"column:user_id;index;not null" json:"user_id"`
	Channel Channel `gorm:"column:channel;type:varchar(20);not null" json:"channel"`
	Subject string  `gorm:"column:subject;type:varchar(255);not null" json:"subject"`
	Body    string  `gorm:"column:body;type:text" json:"body"`
	Status  Status  `gorm:"column:status;type:varchar(20);not null" json:"status"`
	OrderNo string  `gorm:"column:order_no;type:varchar(64);index" json:"order_no"`
}

func (Notification) TableName() string { return "notifications" }

type NotificationRepository interface {
	Save(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*Notification, int64, error)
	// ExistsForOrder 用于消费侧幂等：同一订单号不重复生成通知
	ExistsForOrder(ctx context.Context, orderNo string) (bool, error)
}
