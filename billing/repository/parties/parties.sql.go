package parties

import (
	"context"
)

const getRateOverride = `-- name: GetRateOverride :one
SELECT party_id, rate_bps, created_at, updated_at
FROM party_rate_overrides
WHERE party_id = $1`

func (q *Queries) GetRateOverride(ctx context.Context, partyID string) (PartyRateOverride, error) {
	row := q.db.QueryRow(ctx, getRateOverride, partyID)
	var i PartyRateOverride
	err := row.Scan(&i.PartyID, &i.RateBps, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const upsertRateOverride = `-- name: UpsertRateOverride :one
INSERT INTO party_rate_overrides (party_id, rate_bps)
VALUES ($1, $2)
ON CONFLICT (party_id) DO UPDATE SET rate_bps = EXCLUDED.rate_bps, updated_at = NOW()
RETURNING party_id, rate_bps, created_at, updated_at`

type UpsertRateOverrideParams struct {
	PartyID string
	RateBps int32
}

func (q *Queries) UpsertRateOverride(ctx context.Context, arg UpsertRateOverrideParams) (PartyRateOverride, error) {
	row := q.db.QueryRow(ctx, upsertRateOverride, arg.PartyID, arg.RateBps)
	var i PartyRateOverride
	err := row.Scan(&i.PartyID, &i.RateBps, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteRateOverride = `-- name: DeleteRateOverride :execrows
DELETE FROM party_rate_overrides WHERE party_id = $1`

func (q *Queries) DeleteRateOverride(ctx context.Context, partyID string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteRateOverride, partyID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
