package events

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type BillableEvent struct {
	ID          int64
	Kind        string
	PartyID     string
	Amount      int64
	Currency    string
	SourceRef   string
	Description pgtype.Text
	OccurredAt  pgtype.Timestamptz
	State       string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}
