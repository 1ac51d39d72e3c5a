package devserver

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"haaangry-client/internal/domain"
)

// OrderPublisher emits an event for every placed order. A nil publisher
// on the handler disables publishing.
type OrderPublisher interface {
	PublishOrder(ctx context.Context, o domain.Order) error
}

type orderEvent struct {
	Type  string       `json:"type"`
	Order domain.Order `json:"order"`
}

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishOrder(ctx context.Context, o domain.Order) error {
	payload, _ := json.Marshal(orderEvent{Type: "order_placed", Order: o})
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(o.ID),
		Value: payload,
	})
}

var _ OrderPublisher = (*KafkaPublisher)(nil)
