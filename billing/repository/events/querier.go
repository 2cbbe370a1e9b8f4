package events

import (
	"context"
)

type Querier interface {
	CountEventsByParty(ctx context.Context, arg CountEventsByPartyParams) (int64, error)
	GetEvent(ctx context.Context, id int64) (BillableEvent, error)
	GetEventBySourceRef(ctx context.Context, arg GetEventBySourceRefParams) (BillableEvent, error)
	GetEventForUpdate(ctx context.Context, id int64) (BillableEvent, error)
	// InsertEvent returns pgx.ErrNoRows when an event with the same kind and
	// source ref already exists.
	InsertEvent(ctx context.Context, arg InsertEventParams) (BillableEvent, error)
	ListEventsByParty(ctx context.Context, arg ListEventsByPartyParams) ([]BillableEvent, error)
	ListPendingEventIDs(ctx context.Context, arg ListPendingEventIDsParams) ([]int64, error)
	UpdateEventState(ctx context.Context, arg UpdateEventStateParams) (int64, error)
}

var _ Querier = (*Queries)(nil)
