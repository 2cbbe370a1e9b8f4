package model

import (
	"time"
)

// TaskName identifies one of the scheduled billing operations.
type TaskName string

const (
	TaskProcessExpired     TaskName = "process-expired"
	TaskGenerateRenewals   TaskName = "generate-renewals"
	TaskProcessDunning     TaskName = "process-dunning"
	TaskGeneratePayPerHire TaskName = "generate-pay-per-hire"
	TaskSendWarnings       TaskName = "send-warnings"
)

// Tasks lists every task in a stable order.
var Tasks = []TaskName{
	TaskProcessExpired,
	TaskGenerateRenewals,
	TaskProcessDunning,
	TaskGeneratePayPerHire,
	TaskSendWarnings,
}

type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

type RunState string

const (
	RunStateSelecting  RunState = "selecting"
	RunStateProcessing RunState = "processing"
	RunStateCompleted  RunState = "completed"
)

type ItemStatus string

const (
	ItemStatusInvoiced        ItemStatus = "invoiced"
	ItemStatusAlreadyInvoiced ItemStatus = "already_invoiced"
	ItemStatusUpdated         ItemStatus = "updated"
	ItemStatusSkipped         ItemStatus = "skipped"
)

// ItemResult is the outcome of processing one selected item.
type ItemResult struct {
	ItemID        string     `json:"item_id"`
	Status        ItemStatus `json:"status"`
	InvoiceNumber string     `json:"invoice_number,omitempty"`
}

type ItemFailure struct {
	ItemID string `json:"item_id"`
	Error  string `json:"error"`
}

// RunSummary is reported by every batch run, including runs where items failed.
type RunSummary struct {
	Task        TaskName      `json:"task"`
	Trigger     Trigger       `json:"trigger"`
	WorkflowID  string        `json:"workflow_id,omitempty"`
	State       RunState      `json:"state"`
	AsOf        time.Time     `json:"as_of"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
	Processed   int           `json:"processed"`
	Succeeded   int           `json:"succeeded"`
	Failed      []ItemFailure `json:"failed"`
	Results     []ItemResult  `json:"results,omitempty"`
	Error       string        `json:"error,omitempty"`
}
