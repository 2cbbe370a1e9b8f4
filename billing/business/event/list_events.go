package event

import (
	"context"

	"github.com/samber/lo"

	"trm.app/billing/domain"
	"trm.app/billing/model"
	"trm.app/billing/repository/events"
)

// ListEvents returns a party's billable events, newest first. This is the
// transaction history a party sees.
func (b *business) ListEvents(ctx context.Context, filter model.ListFilter) ([]*model.BillableEvent, int64, error) {
	if filter.PartyID == "" {
		return nil, 0, domain.Validation("party id is required")
	}

	rows, err := b.eventRepo.ListEventsByParty(ctx, events.ListEventsByPartyParams{
		PartyID: filter.PartyID,
		State:   domain.OptionalText(filter.Status),
		From:    domain.OptionalTimestamptz(filter.From),
		To:      domain.OptionalTimestamptz(filter.To),
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
	if err != nil {
		return nil, 0, domain.StoreUnavailable("failed to list billable events", err)
	}

	total, err := b.eventRepo.CountEventsByParty(ctx, events.CountEventsByPartyParams{
		PartyID: filter.PartyID,
		State:   domain.OptionalText(filter.Status),
		From:    domain.OptionalTimestamptz(filter.From),
		To:      domain.OptionalTimestamptz(filter.To),
	})
	if err != nil {
		return nil, 0, domain.StoreUnavailable("failed to count billable events", err)
	}

	return lo.Map(rows, func(row events.BillableEvent, _ int) *model.BillableEvent {
		return domain.EventFromRow(row)
	}), total, nil
}
