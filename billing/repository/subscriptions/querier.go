package subscriptions

import (
	"context"
)

type Querier interface {
	// ExpireSubscription only expires a subscription that is still live,
	// not renewing and past its period end.
	ExpireSubscription(ctx context.Context, arg ExpireSubscriptionParams) (int64, error)
	// FindActiveSubscription returns the party's active or trialing
	// subscription with the latest period end.
	FindActiveSubscription(ctx context.Context, partyID string) (Subscription, error)
	GetSubscription(ctx context.Context, id string) (Subscription, error)
	ListExpiredSubscriptionIDs(ctx context.Context, arg ListExpiredSubscriptionIDsParams) ([]string, error)
	ListExpiringSubscriptionIDs(ctx context.Context, arg ListExpiringSubscriptionIDsParams) ([]string, error)
	ListRenewableSubscriptions(ctx context.Context, arg ListRenewableSubscriptionsParams) ([]Subscription, error)
	// MarkWarned records that the expiry warning for the given period end was
	// sent. It affects no rows when that period was already warned.
	MarkWarned(ctx context.Context, arg MarkWarnedParams) (int64, error)
}

var _ Querier = (*Queries)(nil)
