package jobs

import (
	"context"
	"log/slog"

	"storehouse/internal/core/application/usecases/commands"
	"storehouse/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
)

// DefaultIntakeSchedule runs the receiver every five seconds.
const DefaultIntakeSchedule = "*/5 * * * * *"

type ReceiveOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.ReceiveOrdersCommand) ([]ports.IntakeMessage, error)
}

// BatchRecorder is satisfied by telemetry.OrderMetrics.
type BatchRecorder interface {
	RecordIntakeBatch(ctx context.Context, messages int)
}

// IntakeReceiverJob admits the next batch of placed orders from the intake
// channel on a cron schedule. A run that is still busy when the next tick
// fires causes that tick to be skipped.
type IntakeReceiverJob struct {
	handler  ReceiveOrdersHandler
	recorder BatchRecorder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewIntakeReceiverJob takes a six-field cron schedule (seconds first).
func NewIntakeReceiverJob(
	handler ReceiveOrdersHandler,
	recorder BatchRecorder,
	schedule string,
	logger *slog.Logger,
) *IntakeReceiverJob {
	return &IntakeReceiverJob{
		handler:  handler,
		recorder: recorder,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "intake_receiver_job"),
	}
}

func (j *IntakeReceiverJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Intake receiver job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running batch to finish.
func (j *IntakeReceiverJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Intake receiver job stopped")
}

func (j *IntakeReceiverJob) run(ctx context.Context) {
	batch, err := j.handler.Handle(ctx, commands.NewReceiveOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Intake receiver job failed", "error", err)
		return
	}
	if len(batch) == 0 {
		return
	}

	j.recorder.RecordIntakeBatch(ctx, len(batch))
	j.logger.InfoContext(ctx, "Intake batch admitted",
		"messages", len(batch),
		"quantity", lo.SumBy(batch, func(m ports.IntakeMessage) int { return m.Quantity }),
		"order_ids", lo.Map(batch, func(m ports.IntakeMessage, _ int) string { return m.OrderID.String() }),
	)
}
