package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stalledDeliveryJob *StalledDeliveryJob
	unacceptedOrderJob *UnacceptedOrderJob
}

// NewJobManager creates a new job manager with all required jobs.
// The jobs read through the order repository and only observe.
func NewJobManager(orders ports.OrderRepository, logger *slog.Logger) *JobManager {
	return &JobManager{
		stalledDeliveryJob: NewStalledDeliveryJob(orders, logger),
		unacceptedOrderJob: NewUnacceptedOrderJob(orders, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stalledDeliveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start stalled delivery job: %w", err)
	}

	if err := jm.unacceptedOrderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.stalledDeliveryJob.Stop()
		return fmt.Errorf("failed to start unaccepted order job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.unacceptedOrderJob.Stop()
	jm.stalledDeliveryJob.Stop()
}
