package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// TransactionCompletedTopic is the Kafka topic completed transactions are
// published to.
const TransactionCompletedTopic = "transaction_completed"

// KafkaPublisher writes ledger events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a publisher targeting the given brokers.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    TransactionCompletedTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish encodes the event as JSON keyed by transaction id.
func (p *KafkaPublisher) Publish(ctx context.Context, event TransactionCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
