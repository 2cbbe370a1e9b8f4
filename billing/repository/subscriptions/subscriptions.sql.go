package subscriptions

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const subscriptionColumns = `id, party_id, tier, status, price, currency, current_period_end, auto_renew, warned_period_end, created_at, updated_at`

func scanSubscription(row interface{ Scan(...any) error }) (Subscription, error) {
	var i Subscription
	err := row.Scan(
		&i.ID,
		&i.PartyID,
		&i.Tier,
		&i.Status,
		&i.Price,
		&i.Currency,
		&i.CurrentPeriodEnd,
		&i.AutoRenew,
		&i.WarnedPeriodEnd,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectIDs(rows pgx.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findActiveSubscription = `-- name: FindActiveSubscription :one
SELECT ` + subscriptionColumns + ` FROM subscriptions
WHERE party_id = $1 AND status IN ('active', 'trialing')
ORDER BY current_period_end DESC
LIMIT 1`

func (q *Queries) FindActiveSubscription(ctx context.Context, partyID string) (Subscription, error) {
	return scanSubscription(q.db.QueryRow(ctx, findActiveSubscription, partyID))
}

const getSubscription = `-- name: GetSubscription :one
SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

func (q *Queries) GetSubscription(ctx context.Context, id string) (Subscription, error) {
	return scanSubscription(q.db.QueryRow(ctx, getSubscription, id))
}

const listExpiredSubscriptionIDs = `-- name: ListExpiredSubscriptionIDs :many
SELECT id FROM subscriptions
WHERE status IN ('active', 'trialing') AND auto_renew = FALSE AND current_period_end <= $1
ORDER BY id
LIMIT $2`

type ListExpiredSubscriptionIDsParams struct {
	AsOf  pgtype.Timestamptz
	Limit int32
}

func (q *Queries) ListExpiredSubscriptionIDs(ctx context.Context, arg ListExpiredSubscriptionIDsParams) ([]string, error) {
	return collectIDs(q.db.Query(ctx, listExpiredSubscriptionIDs, arg.AsOf, arg.Limit))
}

const listExpiringSubscriptionIDs = `-- name: ListExpiringSubscriptionIDs :many
SELECT id FROM subscriptions
WHERE status IN ('active', 'trialing')
  AND auto_renew = FALSE
  AND current_period_end > $1
  AND current_period_end <= $2
  AND warned_period_end IS DISTINCT FROM current_period_end
ORDER BY id
LIMIT $3`

type ListExpiringSubscriptionIDsParams struct {
	AsOf  pgtype.Timestamptz
	Until pgtype.Timestamptz
	Limit int32
}

func (q *Queries) ListExpiringSubscriptionIDs(ctx context.Context, arg ListExpiringSubscriptionIDsParams) ([]string, error) {
	return collectIDs(q.db.Query(ctx, listExpiringSubscriptionIDs, arg.AsOf, arg.Until, arg.Limit))
}

// The source ref expression must stay in step with model.RenewalSourceRef.
const listRenewableSubscriptions = `-- name: ListRenewableSubscriptions :many
SELECT ` + subscriptionColumns + ` FROM subscriptions
WHERE status IN ('active', 'trialing') AND auto_renew = TRUE AND price > 0
  AND current_period_end <= $1
  AND NOT EXISTS (
    SELECT 1 FROM billable_events e
    WHERE e.kind = 'subscription_renewal'
      AND e.source_ref = subscriptions.id || ':' ||
        to_char(subscriptions.current_period_end AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
  )
ORDER BY id
LIMIT $2`

type ListRenewableSubscriptionsParams struct {
	AsOf  pgtype.Timestamptz
	Limit int32
}

func (q *Queries) ListRenewableSubscriptions(ctx context.Context, arg ListRenewableSubscriptionsParams) ([]Subscription, error) {
	rows, err := q.db.Query(ctx, listRenewableSubscriptions, arg.AsOf, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Subscription
	for rows.Next() {
		i, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const expireSubscription = `-- name: ExpireSubscription :execrows
UPDATE subscriptions
SET status = 'expired', updated_at = NOW()
WHERE id = $1
  AND status IN ('active', 'trialing')
  AND auto_renew = FALSE
  AND current_period_end <= $2`

type ExpireSubscriptionParams struct {
	ID   string
	AsOf pgtype.Timestamptz
}

func (q *Queries) ExpireSubscription(ctx context.Context, arg ExpireSubscriptionParams) (int64, error) {
	result, err := q.db.Exec(ctx, expireSubscription, arg.ID, arg.AsOf)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const markWarned = `-- name: MarkWarned :execrows
UPDATE subscriptions
SET warned_period_end = $2, updated_at = NOW()
WHERE id = $1 AND current_period_end = $2 AND warned_period_end IS DISTINCT FROM $2`

type MarkWarnedParams struct {
	ID        string
	PeriodEnd pgtype.Timestamptz
}

func (q *Queries) MarkWarned(ctx context.Context, arg MarkWarnedParams) (int64, error) {
	result, err := q.db.Exec(ctx, markWarned, arg.ID, arg.PeriodEnd)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
