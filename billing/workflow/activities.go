package workflow

import (
	"context"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"encore.dev/beta/errs"

	"trm.app/billing/business/task"
	"trm.app/billing/domain"
	"trm.app/billing/model"
)

// Application error types reported by the billing activities.
const (
	ErrTypeValidation      = "Validation"
	ErrTypeNotFound        = "NotFound"
	ErrTypeInvalidState    = "InvalidState"
	ErrTypeAlreadyInvoiced = "AlreadyInvoiced"
	ErrTypeTransient       = "TransientStoreError"
	ErrTypeInternal        = "Internal"
	ErrTypeDependency      = "DependencyError"
)

// ActivityDependencies holds the dependencies needed by activities
type ActivityDependencies struct {
	Tasks task.Business
}

var activityDeps *ActivityDependencies

// SetActivityDependencies sets the dependencies for activities
func SetActivityDependencies(tasks task.Business) {
	if tasks == nil {
		activityDeps = nil
		return
	}
	activityDeps = &ActivityDependencies{
		Tasks: tasks,
	}
}

func dependencies() (*ActivityDependencies, error) {
	if activityDeps == nil || activityDeps.Tasks == nil {
		return nil, temporal.NewApplicationError("activity dependencies not initialized", ErrTypeDependency)
	}
	return activityDeps, nil
}

// SelectItemsActivity returns the ids of the items a task run should process
func SelectItemsActivity(ctx context.Context, taskName model.TaskName, asOf time.Time) ([]string, error) {
	logger := activity.GetLogger(ctx)
	deps, err := dependencies()
	if err != nil {
		logger.Error("Activity dependencies not set")
		return nil, err
	}

	items, err := deps.Tasks.SelectItems(ctx, taskName, asOf)
	if err != nil {
		info := activity.GetInfo(ctx)
		logger.Error("Failed to select billing task items",
			"task", taskName,
			"workflowID", info.WorkflowExecution.ID,
			"asOf", asOf,
			"attempt", info.Attempt,
			"error", err,
		)
		return nil, toApplicationError(err)
	}

	logger.Info("Selected billing task items", "task", taskName, "count", len(items))
	return items, nil
}

// ProcessItemActivity processes one selected item
func ProcessItemActivity(ctx context.Context, taskName model.TaskName, itemID string, asOf time.Time) (*model.ItemResult, error) {
	logger := activity.GetLogger(ctx)
	deps, err := dependencies()
	if err != nil {
		logger.Error("Activity dependencies not set")
		return nil, err
	}

	result, err := deps.Tasks.ProcessItem(ctx, taskName, itemID, asOf)
	if err != nil {
		info := activity.GetInfo(ctx)
		logger.Error("Failed to process billing task item",
			"task", taskName,
			"itemID", itemID,
			"workflowID", info.WorkflowExecution.ID,
			"asOf", asOf,
			"attempt", info.Attempt,
			"error", err,
		)
		return nil, toApplicationError(err)
	}

	logger.Debug("Processed billing task item", "task", taskName, "itemID", itemID, "status", result.Status)
	return result, nil
}

// toApplicationError classifies a business error for the retry policy. Only
// transient failures and unexpected errors are retried.
func toApplicationError(err error) error {
	switch {
	case domain.IsAlreadyInvoiced(err):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeAlreadyInvoiced, nil)
	case domain.IsTransient(err):
		return temporal.NewApplicationError(err.Error(), ErrTypeTransient)
	}

	switch errs.Code(err) {
	case errs.InvalidArgument:
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeValidation, nil)
	case errs.NotFound:
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeNotFound, nil)
	case errs.FailedPrecondition:
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidState, nil)
	}
	return temporal.NewApplicationError(err.Error(), ErrTypeInternal)
}
