package app

import (
	"context"

	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/messaging/kafka/producer"
	"go-payroll/internal/shared/connection"
)

// RunWorker menjalankan poller outbox: membaca outbox_events pending dan
// mem-publish-nya ke Kafka sampai ctx selesai.
func (a *App) RunWorker(ctx context.Context) error {
	writer, err := connection.ConnectKafkaWithRetry(a.Config.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer writer.Close()

	outboxRepo := kafka.NewOutboxRepository(a.SQLDB)

	producer.ProcessOutboxEvents(ctx, outboxRepo, writer, a.Logger, a.Config.OutboxPollInterval)
	return nil
}
