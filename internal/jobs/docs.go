// Package jobs provides scheduled background tasks for the fulfillment
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to watch the order pipeline for orders that need attention.
//
// # Available Jobs
//
// 1. StalledDeliveryJob - Runs every minute to flag out-for-delivery orders
// past their estimated delivery time
// 2. UnacceptedOrderJob - Runs every minute to flag new orders waiting too
// long for a seller decision
//
// Both jobs are read-only observers: they log what they find and never
// mutate order state. Moving an order out of a stuck status remains a
// deliberate seller action.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(orderRepository, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
