package consumer

import (
	"context"
	"errors"
	"time"

	"github.com/wyfcoding/storefront/internal/notification/application"
	orderdomain "github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/mq"
	"github.com/wyfcoding/storefront/pkg/utils"
)

// OrderCreatedConsumer 消费下单事件并触发通知
type OrderCreatedConsumer struct {
	consumer *mq.KafkaConsumer
	svc      *application.NotificationApplicationService
}

func NewOrderCreatedConsumer(consumer *mq.KafkaConsumer, svc *application.NotificationApplicationService) *OrderCreatedConsumer {
	return &OrderCreatedConsumer{consumer: consumer, svc: svc}
}

// Run 消费循环，阻塞直到 ctx 取消。
// 单条消息处理失败时带退避重试，重试耗尽后记录并继续，不阻塞后续消息。
func (c *OrderCreatedConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			logger.Error(ctx, "failed to read message", "error", err)
			continue
		}

		var event orderdomain.OrderCreatedEvent
		if err := msg.UnmarshalPayload(&event); err != nil {
			logger.Error(ctx, "failed to decode order created event",
				"offset", msg.Offset,
				"error", err,
			)
			continue
		}

		err = utils.RetryWithBackoff(3, 200*time.Millisecond, 2*time.Second, func() error {
			return c.svc.HandleOrderCreated(ctx, &event)
		})
		if err != nil {
			logger.Error(ctx, "failed to handle order created event",
				"order_no", event.OrderNo,
				"error", err,
			)
		}
	}
}
