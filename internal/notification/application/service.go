package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/storefront/internal/notification/domain"
	orderdomain "github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/utils"
)

// Sender 投递一条通知到外部渠道。发送失败由调用方决定重试策略。
type Sender interface {
	Send(ctx context.Context, n *domain.Notification) error
}

// NotificationApplicationService 通知应用服务：消费订单事件生成并投递通知
type NotificationApplicationService struct {
	repo   domain.NotificationRepository
	sender Sender
}

func NewNotificationApplicationService(repo domain.NotificationRepository, sender Sender) *NotificationApplicationService {
	return &NotificationApplicationService{repo: repo, sender: sender}
}

// HandleOrderCreated 处理下单事件：幂等生成通知记录并投递。
// 同一订单号的重复事件直接跳过，消息队列的至少一次投递不会造成重复通知。
func (s *NotificationApplicationService) HandleOrderCreated(ctx context.Context, event *orderdomain.OrderCreatedEvent) error {
	exists, err := s.repo.ExistsForOrder(ctx, event.OrderNo)
	if err != nil {
		return err
	}
	if exists {
		logger.Debug(ctx, "notification already exists, skipping", "order_no", event.OrderNo)
		return nil
	}

	n := &domain.Notification{
		UserID:  event.UserID,
		Channel: domain.ChannelEmail,
		Subject: fmt.Sprintf("订单 %s 已创建", event.OrderNo),
		Body:    fmt.Sprintf("您的订单 %s 已创建成功，共 %d 件商品，合计 %s 元。", event.OrderNo, event.ItemCount, event.TotalAmount),
		Status:  domain.StatusPending,
		OrderNo: event.OrderNo,
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return err
	}

	if err := s.sender.Send(ctx, n); err != nil {
		n.Status = domain.StatusFailed
		logger.Error(ctx, "failed to send notification", "order_no", event.OrderNo, "error", err)
	} else {
		n.Status = domain.StatusSent
	}
	return s.repo.Save(ctx, n)
}

// ListNotifications 分页列出用户的通知
func (s *NotificationApplicationService) ListNotifications(ctx context.Context, userID uint, page, pageSize int) ([]*domain.Notification, *utils.Pagination, error) {
	p := utils.NewPagination(page, pageSize, 0)
	notifications, total, err := s.repo.ListByUser(ctx, userID, p.Offset(), p.Limit())
	if err != nil {
		return nil, nil, err
	}
	return notifications, utils.NewPagination(page, pageSize, total), nil
}
