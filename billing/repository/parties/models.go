package parties

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// PartyRateOverride stores a manually configured rate in basis points.
type PartyRateOverride struct {
	PartyID   string
	RateBps   int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
