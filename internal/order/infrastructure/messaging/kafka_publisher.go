package messaging

import (
	"context"

	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/mq"
)

// TopicOrderCreated 下单事件主题
const TopicOrderCreated = "order.created"

type kafkaPublisher struct {
	producer *mq.KafkaProducer
}

func NewKafkaPublisher(producer *mq.KafkaProducer) domain.EventPublisher {
	return &kafkaPublisher{producer: producer}
}

func (p *kafkaPublisher) PublishOrderCreated(ctx context.Context, event *domain.OrderCreatedEvent) error {
	return p.producer.SendMessage(ctx, TopicOrderCreated, event.OrderNo, event)
}
