package task

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"

	"trm.app/billing/domain"
	"trm.app/billing/model"
	"trm.app/billing/repository/events"
	"trm.app/billing/repository/invoices"
	"trm.app/billing/repository/subscriptions"
)

func (b *business) pendingEvents(ctx context.Context, kind model.EventKind, occurredBefore time.Time) ([]string, error) {
	ids, err := b.repo.Events.ListPendingEventIDs(ctx, events.ListPendingEventIDsParams{
		Kind:           string(kind),
		OccurredBefore: domain.Timestamptz(occurredBefore),
		Limit:          b.cfg.SelectLimit,
	})
	if err != nil {
		return nil, domain.StoreUnavailable("failed to select pending events", err)
	}
	return lo.Map(ids, func(id int64, _ int) string {
		return strconv.FormatInt(id, 10)
	}), nil
}

// materialize records an event unless one with the same kind and source ref
// exists.
func (b *business) materialize(ctx context.Context, arg events.InsertEventParams) error {
	_, err := b.repo.Events.InsertEvent(ctx, arg)
	if err != nil && !isNoRows(err) {
		return domain.StoreUnavailable("failed to record billable event", err)
	}
	return nil
}

func (b *business) selectPayPerHire(ctx context.Context, asOf time.Time) ([]string, error) {
	return b.pendingEvents(ctx, model.EventKindHire, asOf.Add(-b.cfg.PayPerHireGrace))
}

func (b *business) selectRenewals(ctx context.Context, asOf time.Time) ([]string, error) {
	subs, err := b.repo.Subscriptions.ListRenewableSubscriptions(ctx, subscriptions.ListRenewableSubscriptionsParams{
		AsOf:  domain.Timestamptz(asOf),
		Limit: b.cfg.SelectLimit,
	})
	if err != nil {
		return nil, domain.StoreUnavailable("failed to select renewable subscriptions", err)
	}
	for _, sub := range subs {
		if sub.Price <= 0 {
			continue
		}
		periodEnd := sub.CurrentPeriodEnd.Time.UTC()
		err := b.materialize(ctx, events.InsertEventParams{
			Kind:        string(model.EventKindSubscriptionRenewal),
			PartyID:     sub.PartyID,
			Amount:      sub.Price,
			Currency:    sub.Currency,
			SourceRef:   model.RenewalSourceRef(sub.ID, periodEnd),
			Description: domain.OptionalText(fmt.Sprintf("%s subscription renewal, period ending %s", sub.Tier, periodEnd.Format("2006-01-02"))),
			OccurredAt:  domain.Timestamptz(periodEnd),
		})
		if err != nil {
			return nil, err
		}
	}
	return b.pendingEvents(ctx, model.EventKindSubscriptionRenewal, asOf)
}

func (b *business) selectDunning(ctx context.Context, asOf time.Time) ([]string, error) {
	overdue, err := b.repo.Invoices.ListOverdueInvoices(ctx, invoices.ListOverdueInvoicesParams{
		DueBefore: domain.Timestamptz(asOf),
		Limit:     b.cfg.SelectLimit,
	})
	if err != nil {
		return nil, domain.StoreUnavailable("failed to select overdue invoices", err)
	}
	for _, inv := range overdue {
		err := b.materialize(ctx, events.InsertEventParams{
			Kind:        string(model.EventKindDunning),
			PartyID:     inv.PartyID,
			Amount:      inv.Total,
			Currency:    inv.Currency,
			SourceRef:   inv.Number,
			Description: domain.OptionalText(fmt.Sprintf("Overdue invoice %s", inv.Number)),
			OccurredAt:  domain.Timestamptz(asOf),
		})
		if err != nil {
			return nil, err
		}
	}
	return b.pendingEvents(ctx, model.EventKindDunning, asOf)
}

// processInvoice invoices one pending event. An event that was invoiced by an
// earlier or concurrent run counts as done.
func (b *business) processInvoice(ctx context.Context, itemID string, _ time.Time) (*model.ItemResult, error) {
	eventID, err := strconv.ParseInt(itemID, 10, 64)
	if err != nil {
		return nil, domain.Validation(fmt.Sprintf("invalid billable event id %q", itemID))
	}

	inv, err := b.invoices.CreateInvoice(ctx, eventID)
	if err != nil {
		if domain.IsAlreadyInvoiced(err) && inv != nil {
			return &model.ItemResult{ItemID: itemID, Status: model.ItemStatusAlreadyInvoiced, InvoiceNumber: inv.Number}, nil
		}
		return nil, err
	}
	return &model.ItemResult{ItemID: itemID, Status: model.ItemStatusInvoiced, InvoiceNumber: inv.Number}, nil
}
