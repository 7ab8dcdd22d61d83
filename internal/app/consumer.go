package app

import (
	"context"

	"go-payroll/internal/messaging/kafka/consumer"
)

// RunConsumer mendengarkan event lifecycle karyawan dan membuat placeholder
// struktur gaji untuk karyawan baru.
func (a *App) RunConsumer(ctx context.Context) error {
	c := consumer.NewEmployeeConsumer(
		a.Config.KafkaBroker,
		a.Config.ConsumerGroupID,
		a.StructureService(),
		a.Logger,
	)
	return c.Run(ctx)
}
