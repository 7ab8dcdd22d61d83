package producer

import (
	"context"

	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/metrics"

	kafkago "github.com/segmentio/kafka-go"
)

func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	metrics.OutboxPublished.WithLabelValues(event.Topic).Inc()
	return nil
}
