package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"encore.dev/rlog"

	"trm.app/billing/model"
	"trm.app/billing/workflow"
)

// Run identifies a started task run.
type Run struct {
	Task       model.TaskName `json:"task"`
	Trigger    model.Trigger  `json:"trigger"`
	WorkflowID string         `json:"workflow_id"`
	RunID      string         `json:"run_id"`
	AsOf       time.Time      `json:"as_of"`
}

type Runner struct {
	temporal    client.Client
	taskQueue   string
	concurrency int
	item        workflow.ItemLimits
	now         func() time.Time
	newID       func() string
}

func NewRunner(temporal client.Client, taskQueue string, concurrency int, item workflow.ItemLimits) *Runner {
	return &Runner{
		temporal:    temporal,
		taskQueue:   taskQueue,
		concurrency: concurrency,
		item:        item,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// WorkflowID derives the workflow id of a run. Scheduled runs of a task within
// the same hour share an id so an overlapping trigger attaches to the running
// execution; manual runs always get a fresh one.
func WorkflowID(task model.TaskName, trigger model.Trigger, asOf time.Time, unique string) string {
	if trigger == model.TriggerManual {
		return fmt.Sprintf("billing-%s-manual-%s", task, unique)
	}
	return fmt.Sprintf("billing-%s-%s", task, asOf.UTC().Format("2006010215"))
}

// Start starts a run of the task without waiting for it.
func (r *Runner) Start(ctx context.Context, task model.TaskName, trigger model.Trigger) (*Run, error) {
	run, _, err := r.start(ctx, task, trigger)
	return run, err
}

func (r *Runner) start(ctx context.Context, task model.TaskName, trigger model.Trigger) (*Run, client.WorkflowRun, error) {
	spec, err := ParseTask(string(task))
	if err != nil {
		return nil, nil, err
	}

	asOf := r.now().UTC()
	workflowID := WorkflowID(spec.Name, trigger, asOf, r.newID())
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: r.taskQueue,
	}
	params := workflow.BillingTaskParams{
		Task:        spec.Name,
		Trigger:     trigger,
		AsOf:        asOf,
		Concurrency: r.concurrency,
		Item:        r.item,
	}

	we, err := r.temporal.ExecuteWorkflow(ctx, options, workflow.BillingTask, params)
	if err != nil {
		rlog.Error("failed to start billing task", "task", spec.Name, "trigger", trigger, "workflow_id", workflowID, "as_of", asOf, "error", err)
		return nil, nil, fmt.Errorf("execute workflow %s: %w", workflowID, err)
	}
	rlog.Info("billing task started", "task", spec.Name, "trigger", trigger, "workflow_id", we.GetID(), "run_id", we.GetRunID())

	return &Run{
		Task:       spec.Name,
		Trigger:    trigger,
		WorkflowID: we.GetID(),
		RunID:      we.GetRunID(),
		AsOf:       asOf,
	}, we, nil
}

// Run starts a run of the task and waits for its summary.
func (r *Runner) Run(ctx context.Context, task model.TaskName, trigger model.Trigger) (*model.RunSummary, error) {
	started, we, err := r.start(ctx, task, trigger)
	if err != nil {
		return nil, err
	}

	var summary model.RunSummary
	if err := we.Get(ctx, &summary); err != nil {
		rlog.Error("billing task run failed", "task", task, "workflow_id", started.WorkflowID, "error", err)
		return nil, fmt.Errorf("wait for workflow %s: %w", started.WorkflowID, err)
	}
	return &summary, nil
}

// Status queries the progress of a run.
func (r *Runner) Status(ctx context.Context, workflowID string) (*model.RunSummary, error) {
	value, err := r.temporal.QueryWorkflow(ctx, workflowID, "", workflow.StateQueryName)
	if err != nil {
		return nil, fmt.Errorf("query workflow %s: %w", workflowID, err)
	}
	var summary model.RunSummary
	if err := value.Get(&summary); err != nil {
		return nil, fmt.Errorf("decode state of workflow %s: %w", workflowID, err)
	}
	return &summary, nil
}

// Stop asks a run to finish the items in flight and schedule no more.
func (r *Runner) Stop(ctx context.Context, workflowID, reason, requestedBy string) error {
	err := r.temporal.SignalWorkflow(ctx, workflowID, "", workflow.StopRunSignalName, workflow.StopRunSignal{
		Reason:      reason,
		RequestedBy: requestedBy,
	})
	if err != nil {
		return fmt.Errorf("signal workflow %s: %w", workflowID, err)
	}
	rlog.Info("billing task stop requested", "workflow_id", workflowID, "reason", reason, "requested_by", requestedBy)
	return nil
}
