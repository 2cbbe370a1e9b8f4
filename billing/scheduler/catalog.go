// Package scheduler maps triggers to billing task runs. Cron jobs and the
// admin surface both start runs through Runner so the two paths cannot drift.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"trm.app/billing/domain"
	"trm.app/billing/model"
)

// TaskSpec describes one scheduled billing task. Schedule is a standard five
// field cron expression evaluated in UTC.
type TaskSpec struct {
	Name     model.TaskName `json:"name"`
	Title    string         `json:"title"`
	Schedule string         `json:"schedule"`
}

var catalog = []TaskSpec{
	{Name: model.TaskProcessExpired, Title: "Expire ended subscriptions", Schedule: "30 0 * * *"},
	{Name: model.TaskGenerateRenewals, Title: "Invoice subscription renewals", Schedule: "0 1 * * *"},
	{Name: model.TaskGeneratePayPerHire, Title: "Invoice pay-per-hire placements", Schedule: "0 2 * * *"},
	{Name: model.TaskProcessDunning, Title: "Charge late fees on overdue invoices", Schedule: "0 9 * * 1"},
	{Name: model.TaskSendWarnings, Title: "Warn subscriptions about to expire", Schedule: "0 10 * * *"},
}

// Catalog returns every task in a stable order.
func Catalog() []TaskSpec {
	return append([]TaskSpec(nil), catalog...)
}

// ParseTask resolves a task name from user input.
func ParseTask(name string) (TaskSpec, error) {
	for _, spec := range catalog {
		if string(spec.Name) == name {
			return spec, nil
		}
	}
	return TaskSpec{}, domain.Validation(fmt.Sprintf("unknown billing task %q", name))
}

// NextRun returns the first fire time strictly after t.
func (s TaskSpec) NextRun(t time.Time) (time.Time, error) {
	schedule, err := cron.ParseStandard(s.Schedule)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse schedule of %s: %w", s.Name, err)
	}
	return schedule.Next(t.UTC()), nil
}
