// Package jobs provides scheduled background tasks for the delivery operations service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// PartnerAvailabilityReconcileJob runs every 30 seconds by default (RECONCILE_SCHEDULE).
// A partner holding a PICKED or ON_ROUTE order must not be flagged available. Every
// request path keeps that inside one unit of work, so a violation only appears after a
// partial failure elsewhere; the job finds such partners and marks them busy, which
// also fans out partner_availability_updated to managers.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, cfg.ReconcileSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed passes are logged and retried on the next tick. A job that fails to start
// returns the cron parse error from StartAll.
package jobs
