package task

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"encore.dev/rlog"

	"trm.app/billing/business/notify"
	"trm.app/billing/domain"
	"trm.app/billing/model"
	"trm.app/billing/repository/subscriptions"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func (b *business) getSubscription(ctx context.Context, id string) (*subscriptions.Subscription, error) {
	sub, err := b.repo.Subscriptions.GetSubscription(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StoreUnavailable("failed to get subscription", err)
	}
	return &sub, nil
}

func (b *business) selectExpired(ctx context.Context, asOf time.Time) ([]string, error) {
	ids, err := b.repo.Subscriptions.ListExpiredSubscriptionIDs(ctx, subscriptions.ListExpiredSubscriptionIDsParams{
		AsOf:  domain.Timestamptz(asOf),
		Limit: b.cfg.SelectLimit,
	})
	if err != nil {
		return nil, domain.StoreUnavailable("failed to select expired subscriptions", err)
	}
	return ids, nil
}

func (b *business) processExpired(ctx context.Context, itemID string, asOf time.Time) (*model.ItemResult, error) {
	sub, err := b.getSubscription(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &model.ItemResult{ItemID: itemID, Status: model.ItemStatusSkipped}, nil
	}

	n, err := b.repo.Subscriptions.ExpireSubscription(ctx, subscriptions.ExpireSubscriptionParams{
		ID:   itemID,
		AsOf: domain.Timestamptz(asOf),
	})
	if err != nil {
		return nil, domain.StoreUnavailable("failed to expire subscription", err)
	}
	if n == 0 {
		// Renewed, cancelled or expired since selection.
		return &model.ItemResult{ItemID: itemID, Status: model.ItemStatusSkipped}, nil
	}

	rlog.Info("subscription expired", "subscription_id", itemID, "party_id", sub.PartyID)
	b.publish(ctx, notify.SubscriptionExpired(domain.SubscriptionFromRow(*sub)))
	return &model.ItemResult{ItemID: itemID, Status: model.ItemStatusUpdated}, nil
}

func (b *business) selectWarnings(ctx context.Context, asOf time.Time) ([]string, error) {
	ids, err := b.repo.Subscriptions.ListExpiringSubscriptionIDs(ctx, subscriptions.ListExpiringSubscriptionIDsParams{
		AsOf:  domain.Timestamptz(asOf),
		Until: domain.Timestamptz(asOf.Add(b.cfg.WarningWindow)),
		Limit: b.cfg.SelectLimit,
	})
	if err != nil {
		return nil, domain.StoreUnavailable("failed to select expiring subscriptions", err)
	}
	return ids, nil
}

func (b *business) processWarning(ctx context.Context, itemID string, asOf time.Time) (*model.ItemResult, error) {
	sub, err := b.getSubscription(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &model.ItemResult{ItemID: itemID, Status: model.ItemStatusSkipped}, nil
	}

	n, err := b.repo.Subscriptions.MarkWarned(ctx, subscriptions.MarkWarnedParams{
		ID:        itemID,
		PeriodEnd: sub.CurrentPeriodEnd,
	})
	if err != nil {
		return nil, domain.StoreUnavailable("failed to mark subscription warned", err)
	}
	if n == 0 {
		return &model.ItemResult{ItemID: itemID, Status: model.ItemStatusSkipped}, nil
	}

	b.publish(ctx, notify.SubscriptionExpiring(domain.SubscriptionFromRow(*sub), asOf))
	return &model.ItemResult{ItemID: itemID, Status: model.ItemStatusUpdated}, nil
}
