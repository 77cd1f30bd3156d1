// Package jobs provides the scheduled background tasks of the storehouse.
//
// Jobs are built on github.com/robfig/cron/v3 with second-resolution schedules.
//
// # Available Jobs
//
// IntakeReceiverJob pulls the next capacity-bounded batch of placed orders
// from the intake channel and logs it. Its schedule comes from
// INTAKE_SCHEDULE and defaults to every five seconds.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(receiveOrdersHandler, orderMetrics, cfg.Intake.Schedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Handler errors are logged and the next tick retries. An invalid schedule
// makes StartAll fail and stops the jobs already started.
package jobs
