package billing

import (
	"context"

	"encore.dev/cron"
	"encore.dev/rlog"

	"trm.app/billing/model"
)

// Schedules must match scheduler.Catalog. Encore reads them statically, so
// they are repeated here as literals.
var (
	_ = cron.NewJob("billing-process-expired", cron.JobConfig{
		Title:    "Expire ended subscriptions",
		Schedule: "30 0 * * *",
		Endpoint: RunProcessExpired,
	})
	_ = cron.NewJob("billing-generate-renewals", cron.JobConfig{
		Title:    "Invoice subscription renewals",
		Schedule: "0 1 * * *",
		Endpoint: RunGenerateRenewals,
	})
	_ = cron.NewJob("billing-generate-pay-per-hire", cron.JobConfig{
		Title:    "Invoice pay-per-hire placements",
		Schedule: "0 2 * * *",
		Endpoint: RunGeneratePayPerHire,
	})
	_ = cron.NewJob("billing-process-dunning", cron.JobConfig{
		Title:    "Charge late fees on overdue invoices",
		Schedule: "0 9 * * 1",
		Endpoint: RunProcessDunning,
	})
	_ = cron.NewJob("billing-send-warnings", cron.JobConfig{
		Title:    "Warn subscriptions about to expire",
		Schedule: "0 10 * * *",
		Endpoint: RunSendWarnings,
	})
)

//encore:api private
func (s *Service) RunProcessExpired(ctx context.Context) error {
	return s.startScheduled(ctx, model.TaskProcessExpired)
}

//encore:api private
func (s *Service) RunGenerateRenewals(ctx context.Context) error {
	return s.startScheduled(ctx, model.TaskGenerateRenewals)
}

//encore:api private
func (s *Service) RunGeneratePayPerHire(ctx context.Context) error {
	return s.startScheduled(ctx, model.TaskGeneratePayPerHire)
}

//encore:api private
func (s *Service) RunProcessDunning(ctx context.Context) error {
	return s.startScheduled(ctx, model.TaskProcessDunning)
}

//encore:api private
func (s *Service) RunSendWarnings(ctx context.Context) error {
	return s.startScheduled(ctx, model.TaskSendWarnings)
}

// startScheduled starts the run without waiting. A trigger that overlaps an
// execution already running for the same hour attaches to it.
func (s *Service) startScheduled(ctx context.Context, task model.TaskName) error {
	run, err := s.runner.Start(ctx, task, model.TriggerScheduled)
	if err != nil {
		rlog.Error("scheduled billing task did not start", "task", task, "error", err)
		return err
	}
	rlog.Info("scheduled billing task running", "task", task, "workflow_id", run.WorkflowID, "as_of", run.AsOf)
	return nil
}
