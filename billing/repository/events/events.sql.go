package events

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const eventColumns = `id, kind, party_id, amount, currency, source_ref, description, occurred_at, state, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (BillableEvent, error) {
	var i BillableEvent
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.PartyID,
		&i.Amount,
		&i.Currency,
		&i.SourceRef,
		&i.Description,
		&i.OccurredAt,
		&i.State,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertEvent = `-- name: InsertEvent :one
INSERT INTO billable_events (kind, party_id, amount, currency, source_ref, description, occurred_at, state)
VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
ON CONFLICT (kind, source_ref) DO NOTHING
RETURNING ` + eventColumns

type InsertEventParams struct {
	Kind        string
	PartyID     string
	Amount      int64
	Currency    string
	SourceRef   string
	Description pgtype.Text
	OccurredAt  pgtype.Timestamptz
}

func (q *Queries) InsertEvent(ctx context.Context, arg InsertEventParams) (BillableEvent, error) {
	row := q.db.QueryRow(ctx, insertEvent,
		arg.Kind,
		arg.PartyID,
		arg.Amount,
		arg.Currency,
		arg.SourceRef,
		arg.Description,
		arg.OccurredAt,
	)
	return scanEvent(row)
}

const getEvent = `-- name: GetEvent :one
SELECT ` + eventColumns + ` FROM billable_events WHERE id = $1`

func (q *Queries) GetEvent(ctx context.Context, id int64) (BillableEvent, error) {
	return scanEvent(q.db.QueryRow(ctx, getEvent, id))
}

const getEventForUpdate = `-- name: GetEventForUpdate :one
SELECT ` + eventColumns + ` FROM billable_events WHERE id = $1 FOR UPDATE`

func (q *Queries) GetEventForUpdate(ctx context.Context, id int64) (BillableEvent, error) {
	return scanEvent(q.db.QueryRow(ctx, getEventForUpdate, id))
}

const getEventBySourceRef = `-- name: GetEventBySourceRef :one
SELECT ` + eventColumns + ` FROM billable_events WHERE kind = $1 AND source_ref = $2`

type GetEventBySourceRefParams struct {
	Kind      string
	SourceRef string
}

func (q *Queries) GetEventBySourceRef(ctx context.Context, arg GetEventBySourceRefParams) (BillableEvent, error) {
	return scanEvent(q.db.QueryRow(ctx, getEventBySourceRef, arg.Kind, arg.SourceRef))
}

const updateEventState = `-- name: UpdateEventState :execrows
UPDATE billable_events
SET state = $3, updated_at = NOW()
WHERE id = $1 AND state = $2`

type UpdateEventStateParams struct {
	ID        int64
	FromState string
	ToState   string
}

func (q *Queries) UpdateEventState(ctx context.Context, arg UpdateEventStateParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateEventState, arg.ID, arg.FromState, arg.ToState)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listEventsByParty = `-- name: ListEventsByParty :many
SELECT ` + eventColumns + ` FROM billable_events
WHERE party_id = $1
  AND ($2::text IS NULL OR state = $2)
  AND ($3::timestamptz IS NULL OR occurred_at >= $3)
  AND ($4::timestamptz IS NULL OR occurred_at < $4)
ORDER BY occurred_at DESC, id DESC
LIMIT $5 OFFSET $6`

type ListEventsByPartyParams struct {
	PartyID string
	State   pgtype.Text
	From    pgtype.Timestamptz
	To      pgtype.Timestamptz
	Limit   int32
	Offset  int32
}

func (q *Queries) ListEventsByParty(ctx context.Context, arg ListEventsByPartyParams) ([]BillableEvent, error) {
	rows, err := q.db.Query(ctx, listEventsByParty,
		arg.PartyID,
		arg.State,
		arg.From,
		arg.To,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BillableEvent
	for rows.Next() {
		i, err := scanEvent(rows)
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

const countEventsByParty = `-- name: CountEventsByParty :one
SELECT COUNT(*) FROM billable_events
WHERE party_id = $1
  AND ($2::text IS NULL OR state = $2)
  AND ($3::timestamptz IS NULL OR occurred_at >= $3)
  AND ($4::timestamptz IS NULL OR occurred_at < $4)`

type CountEventsByPartyParams struct {
	PartyID string
	State   pgtype.Text
	From    pgtype.Timestamptz
	To      pgtype.Timestamptz
}

func (q *Queries) CountEventsByParty(ctx context.Context, arg CountEventsByPartyParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countEventsByParty, arg.PartyID, arg.State, arg.From, arg.To).Scan(&count)
	return count, err
}

const listPendingEventIDs = `-- name: ListPendingEventIDs :many
SELECT id FROM billable_events
WHERE kind = $1 AND state = 'pending' AND occurred_at <= $2
ORDER BY id
LIMIT $3`

type ListPendingEventIDsParams struct {
	Kind           string
	OccurredBefore pgtype.Timestamptz
	Limit          int32
}

func (q *Queries) ListPendingEventIDs(ctx context.Context, arg ListPendingEventIDsParams) ([]int64, error) {
	rows, err := q.db.Query(ctx, listPendingEventIDs, arg.Kind, arg.OccurredBefore, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []int64
	for rows.Next() {
		var id int64
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
