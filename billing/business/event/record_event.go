package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"trm.app/billing/domain"
	"trm.app/billing/model"
	"trm.app/billing/repository/events"
)

func (b *business) RecordEvent(ctx context.Context, event *model.BillableEvent) (*model.BillableEvent, bool, error) {
	if err := validateEvent(event); err != nil {
		return nil, false, err
	}
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	row, err := b.eventRepo.InsertEvent(ctx, events.InsertEventParams{
		Kind:        string(event.Kind),
		PartyID:     event.PartyID,
		Amount:      event.Amount,
		Currency:    event.Currency,
		SourceRef:   event.SourceRef,
		Description: domain.OptionalText(event.Description),
		OccurredAt:  domain.Timestamptz(occurredAt.UTC()),
	})
	if err == nil {
		return domain.EventFromRow(row), true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, domain.StoreUnavailable("failed to record billable event", err)
	}

	existing, err := b.eventRepo.GetEventBySourceRef(ctx, events.GetEventBySourceRefParams{
		Kind:      string(event.Kind),
		SourceRef: event.SourceRef,
	})
	if err != nil {
		return nil, false, domain.StoreUnavailable("failed to get recorded billable event", err)
	}
	if existing.PartyID != event.PartyID || existing.Amount != event.Amount || existing.Currency != event.Currency {
		return nil, false, domain.InvalidState(fmt.Sprintf("%s event %s was already recorded with different content", event.Kind, event.SourceRef))
	}
	return domain.EventFromRow(existing), false, nil
}

func validateEvent(event *model.BillableEvent) error {
	if event == nil {
		return domain.Validation("billable event is required")
	}
	if !event.Kind.Valid() {
		return domain.Validation(fmt.Sprintf("unknown event kind %q", event.Kind))
	}
	if event.PartyID == "" {
		return domain.Validation("party id is required")
	}
	if event.SourceRef == "" {
		return domain.Validation("source ref is required")
	}
	if event.Amount <= 0 {
		return domain.Validation(fmt.Sprintf("amount %d must be positive", event.Amount))
	}
	if len(event.Currency) != 3 {
		return domain.Validation("currency must be a 3 letter code")
	}
	return nil
}
