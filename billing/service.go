package billing

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"encore.dev/rlog"
	"encore.dev/storage/sqldb"

	"trm.app/billing/business/event"
	"trm.app/billing/business/invoice"
	"trm.app/billing/business/rate"
	"trm.app/billing/business/task"
	"trm.app/billing/domain"
	"trm.app/billing/fee"
	"trm.app/billing/repository"
	"trm.app/billing/scheduler"
	"trm.app/billing/workflow"
)

var billingDB = sqldb.NewDatabase("billing", sqldb.DatabaseConfig{
	Migrations: "./db/migrations",
})

//encore:service
type Service struct {
	events   event.Business
	invoices invoice.Business
	rates    rate.Business
	schedule fee.Schedule
	runner   *scheduler.Runner
	temporal client.Client
	worker   worker.Worker
}

func initService() (*Service, error) {
	schedule, err := cfg.Schedule.feeSchedule()
	if err != nil {
		return nil, fmt.Errorf("load fee schedule: %w", err)
	}

	pool := sqldb.Driver(billingDB)
	repo := repository.NewRepository(pool)
	ledger := domain.NewLedger(repository.NewTxManager(pool))
	publisher := newNotificationPublisher()

	rates := rate.NewRateBusiness(repo.Subscriptions, repo.Parties)
	invoices := invoice.NewInvoiceBusiness(repo, ledger, rates, publisher, schedule, cfg.Invoicing.dueAfter())
	tasks := task.NewTaskBusiness(repo, invoices, publisher, cfg.taskConfig())

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("create temporal client: %w", err)
	}

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflow.BillingTask)
	w.RegisterActivity(workflow.SelectItemsActivity)
	w.RegisterActivity(workflow.ProcessItemActivity)
	workflow.SetActivityDependencies(tasks)

	if err := w.Start(); err != nil {
		c.Close()
		return nil, fmt.Errorf("start temporal worker: %w", err)
	}
	rlog.Info("billing service initialized",
		"schedule_version", schedule.Version,
		"task_queue", cfg.Temporal.TaskQueue,
		"concurrency", cfg.Batch.Concurrency,
	)

	return &Service{
		events:   event.NewEventBusiness(repo.Events),
		invoices: invoices,
		rates:    rates,
		schedule: schedule,
		runner:   scheduler.NewRunner(c, cfg.Temporal.TaskQueue, cfg.Batch.Concurrency, cfg.Batch.itemLimits()),
		temporal: c,
		worker:   w,
	}, nil
}

func (s *Service) Shutdown(force context.Context) {
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.temporal != nil {
		s.temporal.Close()
	}
}
