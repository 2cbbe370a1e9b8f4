package model

import (
	"time"
)

// BillableEvent is a domain occurrence that may produce exactly one invoice.
type BillableEvent struct {
	ID          int64      `json:"id"`
	Kind        EventKind  `json:"kind"`
	PartyID     string     `json:"party_id"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	SourceRef   string     `json:"source_ref"`
	Description string     `json:"description,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
	State       EventState `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type EventKind string

const (
	EventKindHire                EventKind = "hire"
	EventKindSubscriptionRenewal EventKind = "subscription_renewal"
	EventKindDunning             EventKind = "dunning"
)

func (k EventKind) Valid() bool {
	switch k {
	case EventKindHire, EventKindSubscriptionRenewal, EventKindDunning:
		return true
	}
	return false
}

type EventState string

const (
	EventStatePending  EventState = "pending"
	EventStateInvoiced EventState = "invoiced"
	EventStatePaid     EventState = "paid"
	EventStateFailed   EventState = "failed"
)
