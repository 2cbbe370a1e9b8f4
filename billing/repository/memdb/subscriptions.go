package memdb

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"trm.app/billing/model"
	"trm.app/billing/repository/subscriptions"
)

type subscriptionStore struct {
	*conn
}

var _ subscriptions.Querier = (*subscriptionStore)(nil)

func live(sub subscriptions.Subscription) bool {
	return sub.Status == "active" || sub.Status == "trialing"
}

func (s *subscriptionStore) FindActiveSubscription(ctx context.Context, partyID string) (subscriptions.Subscription, error) {
	if err := s.begin(ctx, "FindActiveSubscription"); err != nil {
		return subscriptions.Subscription{}, err
	}
	st, done := s.read()
	defer done()
	var (
		found subscriptions.Subscription
		ok    bool
	)
	for _, sub := range st.subscriptions {
		if sub.PartyID != partyID || !live(sub) {
			continue
		}
		if !ok || sub.CurrentPeriodEnd.Time.After(found.CurrentPeriodEnd.Time) {
			found, ok = sub, true
		}
	}
	if !ok {
		return subscriptions.Subscription{}, pgx.ErrNoRows
	}
	return found, nil
}

func (s *subscriptionStore) GetSubscription(ctx context.Context, id string) (subscriptions.Subscription, error) {
	if err := s.begin(ctx, "GetSubscription"); err != nil {
		return subscriptions.Subscription{}, err
	}
	st, done := s.read()
	defer done()
	sub, ok := st.subscriptions[id]
	if !ok {
		return subscriptions.Subscription{}, pgx.ErrNoRows
	}
	return sub, nil
}

func (s *subscriptionStore) selectSorted(match func(*state, subscriptions.Subscription) bool, limit int32) []subscriptions.Subscription {
	st, done := s.read()
	defer done()
	var items []subscriptions.Subscription
	for _, sub := range st.subscriptions {
		if match(st, sub) {
			items = append(items, sub)
		}
	}
	slices.SortFunc(items, func(a, b subscriptions.Subscription) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return page(items, limit, 0)
}

func ids(subs []subscriptions.Subscription) []string {
	out := make([]string, 0, len(subs))
	for _, sub := range subs {
		out = append(out, sub.ID)
	}
	return out
}

func (s *subscriptionStore) ListExpiredSubscriptionIDs(ctx context.Context, arg subscriptions.ListExpiredSubscriptionIDsParams) ([]string, error) {
	if err := s.begin(ctx, "ListExpiredSubscriptionIDs"); err != nil {
		return nil, err
	}
	return ids(s.selectSorted(func(_ *state, sub subscriptions.Subscription) bool {
		return live(sub) && !sub.AutoRenew && !sub.CurrentPeriodEnd.Time.After(arg.AsOf.Time)
	}, arg.Limit)), nil
}

func (s *subscriptionStore) ListExpiringSubscriptionIDs(ctx context.Context, arg subscriptions.ListExpiringSubscriptionIDsParams) ([]string, error) {
	if err := s.begin(ctx, "ListExpiringSubscriptionIDs"); err != nil {
		return nil, err
	}
	return ids(s.selectSorted(func(_ *state, sub subscriptions.Subscription) bool {
		end := sub.CurrentPeriodEnd.Time
		return live(sub) && !sub.AutoRenew &&
			end.After(arg.AsOf.Time) && !end.After(arg.Until.Time) &&
			!sameInstant(sub.WarnedPeriodEnd, end)
	}, arg.Limit)), nil
}

func (s *subscriptionStore) ListRenewableSubscriptions(ctx context.Context, arg subscriptions.ListRenewableSubscriptionsParams) ([]subscriptions.Subscription, error) {
	if err := s.begin(ctx, "ListRenewableSubscriptions"); err != nil {
		return nil, err
	}
	return s.selectSorted(func(st *state, sub subscriptions.Subscription) bool {
		if !live(sub) || !sub.AutoRenew || sub.Price <= 0 || sub.CurrentPeriodEnd.Time.After(arg.AsOf.Time) {
			return false
		}
		ref := model.RenewalSourceRef(sub.ID, sub.CurrentPeriodEnd.Time)
		_, renewed := st.eventKeys[eventKey{kind: "subscription_renewal", sourceRef: ref}]
		return !renewed
	}, arg.Limit), nil
}

func (s *subscriptionStore) ExpireSubscription(ctx context.Context, arg subscriptions.ExpireSubscriptionParams) (int64, error) {
	if err := s.begin(ctx, "ExpireSubscription"); err != nil {
		return 0, err
	}
	st, done := s.write()
	defer done()
	sub, ok := st.subscriptions[arg.ID]
	if !ok || !live(sub) || sub.AutoRenew || sub.CurrentPeriodEnd.Time.After(arg.AsOf.Time) {
		return 0, nil
	}
	sub.Status = "expired"
	sub.UpdatedAt = now()
	st.subscriptions[arg.ID] = sub
	return 1, nil
}

func (s *subscriptionStore) MarkWarned(ctx context.Context, arg subscriptions.MarkWarnedParams) (int64, error) {
	if err := s.begin(ctx, "MarkWarned"); err != nil {
		return 0, err
	}
	st, done := s.write()
	defer done()
	sub, ok := st.subscriptions[arg.ID]
	if !ok || !sub.CurrentPeriodEnd.Time.Equal(arg.PeriodEnd.Time) || sameInstant(sub.WarnedPeriodEnd, arg.PeriodEnd.Time) {
		return 0, nil
	}
	sub.WarnedPeriodEnd = arg.PeriodEnd
	sub.UpdatedAt = now()
	st.subscriptions[arg.ID] = sub
	return 1, nil
}

func sameInstant(ts pgtype.Timestamptz, t time.Time) bool {
	return ts.Valid && ts.Time.Equal(t)
}
