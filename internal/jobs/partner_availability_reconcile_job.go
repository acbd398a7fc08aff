package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the reconciliation every 30 seconds.
const DefaultReconcileSchedule = "*/30 * * * * *"

type AvailabilityReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcilePartnerAvailabilityCommand) (int, error)
}

// PartnerAvailabilityReconcileJob marks busy every partner that is flagged available
// while holding a PICKED or ON_ROUTE order.
type PartnerAvailabilityReconcileJob struct {
	handler  AvailabilityReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPartnerAvailabilityReconcileJob creates the job. schedule is a six-field cron expression
// (seconds first); an empty schedule means DefaultReconcileSchedule.
func NewPartnerAvailabilityReconcileJob(
	handler AvailabilityReconciler,
	schedule string,
	logger *slog.Logger,
) *PartnerAvailabilityReconcileJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &PartnerAvailabilityReconcileJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "partner_availability_reconcile_job"),
	}
}

// Run performs one reconciliation pass and returns the number of repaired partners.
func (j *PartnerAvailabilityReconcileJob) Run(ctx context.Context) int {
	repaired, err := j.handler.Handle(ctx, commands.NewReconcilePartnerAvailabilityCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Partner availability reconciliation failed", "error", err)
		return 0
	}
	if repaired > 0 {
		j.logger.WarnContext(ctx, "Repaired partners flagged available during an active delivery", "count", repaired)
	}
	return repaired
}

func (j *PartnerAvailabilityReconcileJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Partner availability reconcile job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *PartnerAvailabilityReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Partner availability reconcile job stopped")
}
