package parties

import (
	"context"
)

type Querier interface {
	DeleteRateOverride(ctx context.Context, partyID string) (int64, error)
	GetRateOverride(ctx context.Context, partyID string) (PartyRateOverride, error)
	UpsertRateOverride(ctx context.Context, arg UpsertRateOverrideParams) (PartyRateOverride, error)
}

var _ Querier = (*Queries)(nil)
