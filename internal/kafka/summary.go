package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"solana-withdraw-alerts/internal/domain"
)

// SummaryPublisher publishes processed withdrawal summaries to Kafka
// for downstream consumers. The chat path never depends on it.
type SummaryPublisher struct {
	writer *kafka.Writer
	Topic  string
}

func NewSummaryPublisher(brokers []string, topic string) *SummaryPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &SummaryPublisher{writer: writer, Topic: topic}
}

// Publish writes one summary, keyed by signature so redeliveries of
// the same transaction land on the same partition.
func (p *SummaryPublisher) Publish(ctx context.Context, s domain.WithdrawalSummary) error {
	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(s.Signature),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *SummaryPublisher) Close() error {
	return p.writer.Close()
}
