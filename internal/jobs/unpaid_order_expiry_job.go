package jobs

import (
	"context"
	"log/slog"
	"time"

	"feedme/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultExpirySchedule runs the expiry sweep at the start of every minute.
const DefaultExpirySchedule = "0 * * * * *"

type expireUnpaidOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireUnpaidOrdersCommand) (int, error)
}

// UnpaidOrderExpiryJob cancels orders that are still unpaid after ttl.
// A run is skipped while the previous one is still going.
type UnpaidOrderExpiryJob struct {
	handler   expireUnpaidOrdersHandler
	schedule  string
	ttl       time.Duration
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewUnpaidOrderExpiryJob creates the job. schedule is a six-field cron
// expression (seconds first) or a descriptor such as "@every 1m".
func NewUnpaidOrderExpiryJob(
	handler expireUnpaidOrdersHandler,
	schedule string,
	ttl time.Duration,
	batchSize int,
	logger *slog.Logger,
) *UnpaidOrderExpiryJob {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	return &UnpaidOrderExpiryJob{
		handler:   handler,
		schedule:  schedule,
		ttl:       ttl,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "unpaid_order_expiry_job"),
	}
}

func (j *UnpaidOrderExpiryJob) Name() string {
	return "unpaid order expiry"
}

// RunOnce performs a single sweep and returns how many orders were cancelled.
func (j *UnpaidOrderExpiryJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewExpireUnpaidOrdersCommand(j.ttl, j.batchSize)
	if err != nil {
		return 0, err
	}
	return j.handler.Handle(ctx, cmd)
}

func (j *UnpaidOrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		expired, err := j.RunOnce(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Unpaid order expiry failed", "error", err)
			return
		}
		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired unpaid orders", "count", expired)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unpaid order expiry job started",
		"schedule", j.schedule, "ttl", j.ttl, "batch_size", j.batchSize)
	return nil
}

// Stop removes the schedule and waits for a running sweep to finish.
func (j *UnpaidOrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Unpaid order expiry job stopped")
}
