package storage

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"nightpay/checkout-svc/internal/domain"
	"nightpay/checkout-svc/internal/service"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishPayment(ctx context.Context, event domain.PaymentEvent) error {
	payload, _ := json.Marshal(event)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

var _ service.PaymentPublisher = (*KafkaPublisher)(nil)
