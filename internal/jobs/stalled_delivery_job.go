package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// StalledDeliveryJob watches orders that are out for delivery and logs the
// ones past their estimated delivery time. It never mutates order state.
type StalledDeliveryJob struct {
	orders ports.OrderRepository
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time
}

// NewStalledDeliveryJob creates a job that checks in-flight deliveries every
// minute.
func NewStalledDeliveryJob(orders ports.OrderRepository, logger *slog.Logger) *StalledDeliveryJob {
	return &StalledDeliveryJob{
		orders: orders,
		cron:   cron.New(),
		logger: logger.With("component", "stalled_delivery_job"),
		now:    time.Now,
	}
}

// Start begins the stalled delivery check, running every minute.
func (j *StalledDeliveryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.runOnce(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stalled delivery job started (running every minute)")
	return nil
}

// Stop stops the stalled delivery job.
func (j *StalledDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stalled delivery job stopped")
}

func (j *StalledDeliveryJob) runOnce(ctx context.Context) {
	inFlight, err := j.orders.GetAllInStatus(ctx, order.StatusOutForDelivery)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stalled delivery check failed", "error", err)
		return
	}

	now := j.now().UTC()
	for _, o := range inFlight {
		assignment := o.Assignment()
		if assignment == nil {
			continue
		}

		if eta := assignment.EstimatedDeliveryTime(); now.After(eta) {
			j.logger.WarnContext(ctx, "Delivery past its estimate",
				"order_id", o.ID().String(),
				"order_number", o.OrderNumber(),
				"partner_name", assignment.PartnerName(),
				"overdue", now.Sub(eta).Round(time.Second).String(),
			)
		}
	}
}
