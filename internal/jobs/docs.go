// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. OpenDeliveryReminderJob - Runs every minute and reminds each driver of
// their open deliveries over the realtime channel
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(deliveryRepository, publisher, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Reminder rounds that fail to load open deliveries are logged and retried on
// the next tick; the realtime channel itself is fire-and-forget.
package jobs
