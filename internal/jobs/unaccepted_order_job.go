package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// unacceptedThreshold is how long a new order may wait for a seller decision
// before the job flags it.
const unacceptedThreshold = 10 * time.Minute

// UnacceptedOrderJob watches orders still in the new status and logs the
// ones waiting too long for an accept or decline. It never mutates order
// state.
type UnacceptedOrderJob struct {
	orders ports.OrderRepository
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time
}

// NewUnacceptedOrderJob creates a job that checks waiting orders every
// minute.
func NewUnacceptedOrderJob(orders ports.OrderRepository, logger *slog.Logger) *UnacceptedOrderJob {
	return &UnacceptedOrderJob{
		orders: orders,
		cron:   cron.New(),
		logger: logger.With("component", "unaccepted_order_job"),
		now:    time.Now,
	}
}

// Start begins the unaccepted order check, running every minute.
func (j *UnacceptedOrderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.runOnce(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unaccepted order job started (running every minute)")
	return nil
}

// Stop stops the unaccepted order job.
func (j *UnacceptedOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Unaccepted order job stopped")
}

func (j *UnacceptedOrderJob) runOnce(ctx context.Context) {
	waiting, err := j.orders.GetAllInStatus(ctx, order.StatusNew)
	if err != nil {
		j.logger.ErrorContext(ctx, "Unaccepted order check failed", "error", err)
		return
	}

	now := j.now().UTC()
	for _, o := range waiting {
		age := now.Sub(o.CreatedAt())
		if age < unacceptedThreshold {
			continue
		}

		j.logger.WarnContext(ctx, "Order waiting for a seller decision",
			"order_id", o.ID().String(),
			"order_number", o.OrderNumber(),
			"waiting", age.Round(time.Second).String(),
		)
	}
}
