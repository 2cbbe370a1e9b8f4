package event

import (
	"context"

	"trm.app/billing/model"
	"trm.app/billing/repository/events"
)

type Business interface {
	// RecordEvent stores an upstream billable event. Recording the same kind
	// and source ref again returns the stored event with created set to false.
	RecordEvent(ctx context.Context, event *model.BillableEvent) (stored *model.BillableEvent, created bool, err error)
	GetEvent(ctx context.Context, id int64) (*model.BillableEvent, error)
	ListEvents(ctx context.Context, filter model.ListFilter) ([]*model.BillableEvent, int64, error)
}

type business struct {
	eventRepo events.Querier
}

func NewEventBusiness(eventRepo events.Querier) Business {
	return &business{eventRepo: eventRepo}
}
