package subscriptions

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Subscription struct {
	ID               string
	PartyID          string
	Tier             string
	Status           string
	Price            int64
	Currency         string
	CurrentPeriodEnd pgtype.Timestamptz
	AutoRenew        bool
	WarnedPeriodEnd  pgtype.Timestamptz
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}
