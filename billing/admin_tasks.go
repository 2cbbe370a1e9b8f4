package billing

import (
	"context"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"trm.app/billing/model"
	"trm.app/billing/scheduler"
)

type RunTaskResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Summary *model.RunSummary `json:"summary,omitempty"`
}

// RunTask runs a billing task now and waits for its summary. It goes through
// the same workflow as the scheduled runs.
//
//encore:api private path=/v1/admin/billing/tasks/:task method=POST tag:idempotency
func (s *Service) RunTask(ctx context.Context, task string) (*RunTaskResponse, error) {
	spec, err := scheduler.ParseTask(task)
	if err != nil {
		return nil, err
	}

	summary, err := s.runner.Run(ctx, spec.Name, model.TriggerManual)
	if err != nil {
		rlog.Error("manual billing task failed", "task", spec.Name, "error", err)
		return &RunTaskResponse{Success: false, Error: err.Error()}, nil
	}
	return summaryResponse(summary), nil
}

func summaryResponse(summary *model.RunSummary) *RunTaskResponse {
	resp := &RunTaskResponse{Success: true, Summary: summary}
	switch {
	case summary.Error != "":
		resp.Success = false
		resp.Error = summary.Error
	case len(summary.Failed) > 0:
		resp.Success = false
		resp.Error = "one or more items failed"
	}
	return resp
}

type TaskInfo struct {
	scheduler.TaskSpec
	NextRun time.Time `json:"next_run"`
}

type ListTasksResponse struct {
	Tasks []TaskInfo `json:"tasks"`
}

//encore:api private path=/v1/admin/billing/tasks method=GET
func (s *Service) ListTasks(ctx context.Context) (*ListTasksResponse, error) {
	now := time.Now().UTC()
	resp := &ListTasksResponse{}
	for _, spec := range scheduler.Catalog() {
		next, err := spec.NextRun(now)
		if err != nil {
			rlog.Error("invalid task schedule", "task", spec.Name, "schedule", spec.Schedule, "error", err)
			return nil, &errs.Error{Code: errs.Internal, Message: "invalid task schedule"}
		}
		resp.Tasks = append(resp.Tasks, TaskInfo{TaskSpec: spec, NextRun: next})
	}
	return resp, nil
}

type RunStatusResponse struct {
	Summary model.RunSummary `json:"summary"`
}

// GetRunStatus reports the progress of a running or finished task run.
//
//encore:api private path=/v1/admin/billing/runs/:workflowID method=GET
func (s *Service) GetRunStatus(ctx context.Context, workflowID string) (*RunStatusResponse, error) {
	summary, err := s.runner.Status(ctx, workflowID)
	if err != nil {
		rlog.Error("failed to query billing run", "workflow_id", workflowID, "error", err)
		return nil, &errs.Error{Code: errs.NotFound, Message: "billing run not found or not queryable"}
	}
	return &RunStatusResponse{Summary: *summary}, nil
}

type StopRunRequest struct {
	Reason      string `json:"reason" validate:"required,max=500"`
	RequestedBy string `json:"requested_by" validate:"required,max=128"`
}

// StopRun lets the items in flight finish and schedules no more. The run
// still completes with a summary.
//
//encore:api private path=/v1/admin/billing/runs/:workflowID/stop method=POST
func (s *Service) StopRun(ctx context.Context, workflowID string, req *StopRunRequest) error {
	if err := s.runner.Stop(ctx, workflowID, req.Reason, req.RequestedBy); err != nil {
		rlog.Error("failed to stop billing run", "workflow_id", workflowID, "error", err)
		return &errs.Error{Code: errs.Unavailable, Message: "failed to stop billing run"}
	}
	return nil
}

func (r *StopRunRequest) Validate() error {
	return validateStruct(r)
}
