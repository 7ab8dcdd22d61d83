package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-payroll/internal/events"
	"go-payroll/internal/salarystructure"
	"go-payroll/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EmployeeConsumer mendengarkan lifecycle karyawan dari layanan HR. Karyawan
// baru langsung mendapat placeholder struktur gaji ber-CTC nol supaya muncul
// di layar HR; batch payroll akan menolaknya sampai angkanya diisi.
type EmployeeConsumer struct {
	reader           *kafkago.Reader
	structureService salarystructure.Service
	logger           *zap.Logger
}

func NewEmployeeConsumer(
	broker string,
	groupID string,
	structureService salarystructure.Service,
	logger *zap.Logger,
) *EmployeeConsumer {
	return &EmployeeConsumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers: []string{broker},
			GroupID: groupID,
			Topic:   events.EmployeeCreatedTopic,
		}),
		structureService: structureService,
		logger:           logger.Named("kafka.consumer.employee"),
	}
}

// Run memproses pesan sampai ctx selesai. Offset di-commit hanya setelah
// pesan sukses ditangani; pesan cacat (malformed) di-commit juga supaya tidak
// menyumbat partisi.
func (c *EmployeeConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	c.logger.Info("employee consumer started", zap.String("topic", events.EmployeeCreatedTopic))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.logger.Info("employee consumer stopped")
				return nil
			}
			return err
		}

		if err := c.handle(ctx, msg.Value); err != nil {
			c.logger.Error("handle employee event failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("commit offset failed", zap.Error(err))
		}
	}
}

func (c *EmployeeConsumer) handle(ctx context.Context, payload []byte) error {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.logger.Warn("malformed employee event, skipping", zap.Error(err))
		return nil
	}
	if event.EmployeeID == "" || event.CompanyID == "" {
		c.logger.Warn("employee event missing ids, skipping")
		return nil
	}

	_, err := c.structureService.CreateDefault(ctx, event.CompanyID, event.EmployeeID)
	if err != nil {
		var appErr *apperror.AppError
		// Placeholder sudah ada (retry atau duplikat pesan): aman di-skip.
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeConflict {
			return nil
		}
		return err
	}

	c.logger.Info("default salary structure created",
		zap.String("employee_id", event.EmployeeID),
		zap.String("company_id", event.CompanyID),
	)
	return nil
}
