package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	"trm.app/billing/domain"
	"trm.app/billing/model"
	"trm.app/billing/workflow"
)

var (
	fixedNow   = time.Date(2024, 1, 15, 2, 0, 3, 0, time.UTC)
	itemLimits = workflow.ItemLimits{Timeout: 45 * time.Second, Deadline: 10 * time.Minute, MaxAttempts: 3}
)

func newTestRunner(t *testing.T) (*Runner, *mocks.Client) {
	mockTemporal := mocks.NewClient(t)
	r := NewRunner(mockTemporal, "billing-tasks", 4, itemLimits)
	r.now = func() time.Time { return fixedNow }
	r.newID = func() string { return "8c1f" }
	return r, mockTemporal
}

func TestWorkflowID(t *testing.T) {
	assert.Equal(t, "billing-send-warnings-2024011502", WorkflowID(model.TaskSendWarnings, model.TriggerScheduled, fixedNow, "x"))
	assert.Equal(t, "billing-send-warnings-manual-x", WorkflowID(model.TaskSendWarnings, model.TriggerManual, fixedNow, "x"))
}

func TestRunner_Start(t *testing.T) {
	testCases := []struct {
		name       string
		trigger    model.Trigger
		workflowID string
	}{
		{name: "scheduled", trigger: model.TriggerScheduled, workflowID: "billing-generate-pay-per-hire-2024011502"},
		{name: "manual", trigger: model.TriggerManual, workflowID: "billing-generate-pay-per-hire-manual-8c1f"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, mockTemporal := newTestRunner(t)
			run := mocks.NewWorkflowRun(t)
			run.On("GetID").Return(tc.workflowID)
			run.On("GetRunID").Return("run-1")

			mockTemporal.On("ExecuteWorkflow",
				mock.Anything,
				client.StartWorkflowOptions{ID: tc.workflowID, TaskQueue: "billing-tasks"},
				mock.Anything,
				workflow.BillingTaskParams{
					Task:        model.TaskGeneratePayPerHire,
					Trigger:     tc.trigger,
					AsOf:        fixedNow,
					Concurrency: 4,
					Item:        itemLimits,
				},
			).Return(run, nil).Once()

			started, err := r.Start(context.Background(), model.TaskGeneratePayPerHire, tc.trigger)
			require.NoError(t, err)
			assert.Equal(t, tc.workflowID, started.WorkflowID)
			assert.Equal(t, "run-1", started.RunID)
			assert.Equal(t, fixedNow, started.AsOf)
		})
	}
}

func TestRunner_StartRejectsUnknownTask(t *testing.T) {
	r, _ := newTestRunner(t)
	_, err := r.Start(context.Background(), "rebuild-everything", model.TriggerManual)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestRunner_StartFailure(t *testing.T) {
	r, mockTemporal := newTestRunner(t)
	mockTemporal.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("temporal unavailable")).
		Once()

	_, err := r.Start(context.Background(), model.TaskProcessExpired, model.TriggerScheduled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "billing-process-expired-2024011502")
}

func TestRunner_RunWaitsForSummary(t *testing.T) {
	r, mockTemporal := newTestRunner(t)
	run := mocks.NewWorkflowRun(t)
	run.On("GetID").Return("billing-process-dunning-manual-8c1f")
	run.On("GetRunID").Return("run-1")
	run.On("Get", mock.Anything, mock.AnythingOfType("*model.RunSummary")).
		Run(func(args mock.Arguments) {
			summary := args.Get(1).(*model.RunSummary)
			summary.Task = model.TaskProcessDunning
			summary.State = model.RunStateCompleted
			summary.Processed = 3
			summary.Succeeded = 3
		}).
		Return(nil).
		Once()
	mockTemporal.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(run, nil).Once()

	summary, err := r.Run(context.Background(), model.TaskProcessDunning, model.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, model.RunStateCompleted, summary.State)
	assert.Equal(t, 3, summary.Succeeded)
}

type encodedSummary struct {
	summary model.RunSummary
}

func (e encodedSummary) HasValue() bool { return true }

func (e encodedSummary) Get(valuePtr interface{}) error {
	*valuePtr.(*model.RunSummary) = e.summary
	return nil
}

func TestRunner_Status(t *testing.T) {
	r, mockTemporal := newTestRunner(t)
	mockTemporal.On("QueryWorkflow", mock.Anything, "billing-x", "", workflow.StateQueryName).
		Return(encodedSummary{summary: model.RunSummary{State: model.RunStateProcessing, Processed: 2}}, nil).
		Once()

	summary, err := r.Status(context.Background(), "billing-x")
	require.NoError(t, err)
	assert.Equal(t, model.RunStateProcessing, summary.State)
	assert.Equal(t, 2, summary.Processed)
}

func TestRunner_Stop(t *testing.T) {
	r, mockTemporal := newTestRunner(t)
	mockTemporal.On("SignalWorkflow", mock.Anything, "billing-x", "", workflow.StopRunSignalName,
		workflow.StopRunSignal{Reason: "bad schedule", RequestedBy: "ops"}).
		Return(nil).
		Once()

	require.NoError(t, r.Stop(context.Background(), "billing-x", "bad schedule", "ops"))

	mockTemporal.On("SignalWorkflow", mock.Anything, "billing-y", "", workflow.StopRunSignalName, mock.Anything).
		Return(errors.New("workflow not found")).
		Once()
	require.Error(t, r.Stop(context.Background(), "billing-y", "", "ops"))
}
