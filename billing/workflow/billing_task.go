package workflow

import (
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"trm.app/billing/model"
)

// DefaultConcurrency is the number of items processed in parallel when the
// run parameters do not say otherwise.
const DefaultConcurrency = 5

// Item activity defaults, used for any zero ItemLimits field.
const (
	DefaultItemTimeout     = 30 * time.Second
	DefaultItemDeadline    = 5 * time.Minute
	DefaultItemMaxAttempts = 5
)

// ItemLimits bounds the activity that processes one item. Timeout caps a single
// attempt and Deadline caps all attempts together.
type ItemLimits struct {
	Timeout     time.Duration `json:"timeout"`
	Deadline    time.Duration `json:"deadline"`
	MaxAttempts int32         `json:"max_attempts"`
}

// BillingTaskParams contains parameters for starting a billing task run
type BillingTaskParams struct {
	Task        model.TaskName `json:"task"`
	Trigger     model.Trigger  `json:"trigger"`
	AsOf        time.Time      `json:"as_of"`
	Concurrency int            `json:"concurrency"`
	Item        ItemLimits     `json:"item"`
}

var selectActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 2 * time.Minute,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:        2 * time.Second,
		BackoffCoefficient:     2.0,
		MaximumInterval:        30 * time.Second,
		MaximumAttempts:        5,
		NonRetryableErrorTypes: []string{ErrTypeValidation, ErrTypeDependency},
	},
}

func itemActivityOptions(limits ItemLimits) workflow.ActivityOptions {
	if limits.Timeout <= 0 {
		limits.Timeout = DefaultItemTimeout
	}
	if limits.Deadline <= 0 {
		limits.Deadline = DefaultItemDeadline
	}
	if limits.Deadline < limits.Timeout {
		limits.Deadline = limits.Timeout
	}
	if limits.MaxAttempts <= 0 {
		limits.MaxAttempts = DefaultItemMaxAttempts
	}
	return workflow.ActivityOptions{
		StartToCloseTimeout:    limits.Timeout,
		ScheduleToCloseTimeout: limits.Deadline,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    limits.MaxAttempts,
			NonRetryableErrorTypes: []string{
				ErrTypeValidation,
				ErrTypeNotFound,
				ErrTypeInvalidState,
				ErrTypeAlreadyInvoiced,
				ErrTypeDependency,
			},
		},
	}
}

// BillingTask runs one billing task over every selected item. A failing item
// never aborts the run: its error is recorded in the summary and the remaining
// items are still processed. The workflow itself only fails on setup errors.
func BillingTask(ctx workflow.Context, params BillingTaskParams) (*model.RunSummary, error) {
	logger := workflow.GetLogger(ctx)
	info := workflow.GetInfo(ctx)

	asOf := params.AsOf
	if asOf.IsZero() {
		asOf = workflow.Now(ctx).UTC()
	}
	summary := &model.RunSummary{
		Task:       params.Task,
		Trigger:    params.Trigger,
		WorkflowID: info.WorkflowExecution.ID,
		State:      model.RunStateSelecting,
		AsOf:       asOf,
		StartedAt:  workflow.Now(ctx).UTC(),
		Failed:     []model.ItemFailure{},
	}

	err := workflow.SetQueryHandler(ctx, StateQueryName, func() (model.RunSummary, error) {
		return *summary, nil
	})
	if err != nil {
		return nil, fmt.Errorf("register %s query: %w", StateQueryName, err)
	}

	logger.Info("Starting billing task", "task", params.Task, "trigger", params.Trigger, "asOf", asOf)

	var items []string
	selectCtx := workflow.WithActivityOptions(ctx, selectActivityOptions)
	if err := workflow.ExecuteActivity(selectCtx, SelectItemsActivity, params.Task, asOf).Get(ctx, &items); err != nil {
		logger.Error("Billing task selection failed", "task", params.Task, "workflowID", info.WorkflowExecution.ID, "error", err)
		summary.Error = errorMessage(err)
		return complete(ctx, summary), nil
	}

	summary.State = model.RunStateProcessing
	processItems(ctx, params, asOf, items, summary)

	logger.Info("Billing task completed",
		"task", params.Task,
		"processed", summary.Processed,
		"succeeded", summary.Succeeded,
		"failed", len(summary.Failed),
	)
	return complete(ctx, summary), nil
}

// processItems keeps at most params.Concurrency item activities in flight and
// folds each outcome into the summary as it completes.
func processItems(ctx workflow.Context, params BillingTaskParams, asOf time.Time, items []string, summary *model.RunSummary) {
	logger := workflow.GetLogger(ctx)
	concurrency := params.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	itemCtx := workflow.WithActivityOptions(ctx, itemActivityOptions(params.Item))
	selector := workflow.NewSelector(ctx)

	stopped := false
	stop := func(signal StopRunSignal) {
		logger.Info("Received stop signal", "task", params.Task, "reason", signal.Reason, "requestedBy", signal.RequestedBy)
		if !stopped {
			stopped = true
			summary.Error = fmt.Sprintf("stopped by %s: %s", signal.RequestedBy, signal.Reason)
		}
	}
	stopCh := workflow.GetSignalChannel(ctx, StopRunSignalName)
	// A stop that arrived during selection must win before anything is
	// scheduled.
	var pending StopRunSignal
	for stopCh.ReceiveAsync(&pending) {
		stop(pending)
	}
	selector.AddReceive(stopCh, func(c workflow.ReceiveChannel, more bool) {
		var signal StopRunSignal
		c.Receive(ctx, &signal)
		stop(signal)
	})

	next, inFlight := 0, 0
	for {
		for !stopped && inFlight < concurrency && next < len(items) {
			itemID := items[next]
			next++
			inFlight++
			future := workflow.ExecuteActivity(itemCtx, ProcessItemActivity, params.Task, itemID, asOf)
			selector.AddFuture(future, func(f workflow.Future) {
				inFlight--
				var result model.ItemResult
				fold(summary, itemID, result, f.Get(ctx, &result))
			})
		}
		if inFlight == 0 {
			return
		}
		selector.Select(ctx)
	}
}

// fold adds one item outcome to the summary. An item that was already
// invoiced counts as a success.
func fold(summary *model.RunSummary, itemID string, result model.ItemResult, err error) {
	summary.Processed++
	if err != nil {
		if errorType(err) == ErrTypeAlreadyInvoiced {
			summary.Succeeded++
			summary.Results = append(summary.Results, model.ItemResult{ItemID: itemID, Status: model.ItemStatusAlreadyInvoiced})
			return
		}
		summary.Failed = append(summary.Failed, model.ItemFailure{ItemID: itemID, Error: errorMessage(err)})
		return
	}
	if result.ItemID == "" {
		result.ItemID = itemID
	}
	summary.Succeeded++
	summary.Results = append(summary.Results, result)
}

func complete(ctx workflow.Context, summary *model.RunSummary) *model.RunSummary {
	summary.State = model.RunStateCompleted
	summary.CompletedAt = workflow.Now(ctx).UTC()
	return summary
}

func errorType(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Type()
	}
	return ""
}

// errorMessage strips the activity envelope so the summary carries the
// business error.
func errorMessage(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
