package sender

import (
	"context"

	"github.com/wyfcoding/storefront/internal/notification/application"
	"github.com/wyfcoding/storefront/internal/notification/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
)

// logSender 把通知写入结构化日志。
// 接入真实邮件/短信网关时替换此实现即可，应用层不感知。
type logSender struct{}

func NewLogSender() application.Sender {
	return &logSender{}
}

func (logSender) Send(ctx context.Context, n *domain.Notification) error {
	logger.Info(ctx, "notification delivered",
		"user_id", n.UserID,
		"channel", string(n.Channel),
		"subject", n.Subject,
		"order_no", n.OrderNo,
	)
	return nil
}
