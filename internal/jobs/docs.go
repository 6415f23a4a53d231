// Package jobs runs the scheduled background tasks of Feedme on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// UnpaidOrderExpiryJob cancels orders that stay unpaid in the Processing
// status for longer than the configured TTL. It runs every minute by default.
//
// # Usage
//
//	expiry := jobs.NewUnpaidOrderExpiryJob(handler, cfg.ExpirySchedule, cfg.UnpaidOrderTTL, cfg.ExpiryBatchSize, logger)
//	manager := jobs.NewJobManager(expiry)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// Failed sweeps are logged and retried on the next tick. A job that fails to
// start stops the jobs started before it.
package jobs
