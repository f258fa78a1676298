// Package jobs provides scheduled background tasks for the delivery
// lifecycle engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. NotificationDispatchJob - Pumps the notification outbox, handing pending
// and retryable entries to the SMS channel in batches
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, "* * * * * *", 25, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatch schedule is a six-field cron expression with seconds
// resolution, so the outbox can be pumped as often as every second.
//
// # Error Handling
//
// A failed pump is logged and retried on the next tick; a single
// undeliverable message never stops the job. Entries that could not be sent
// stay in the outbox in a retryable state.
package jobs
