package rate

import (
	"context"

	"github.com/shopspring/decimal"

	"trm.app/billing/fee"
	"trm.app/billing/model"
	"trm.app/billing/repository/parties"
	"trm.app/billing/repository/subscriptions"
)

type Business interface {
	ResolveRate(ctx context.Context, schedule fee.Schedule, partyID string) (*model.RateResolution, error)
	SetOverride(ctx context.Context, partyID string, ratePercent decimal.Decimal) (*model.RateOverride, error)
	ClearOverride(ctx context.Context, partyID string) error
}

type business struct {
	subscriptionRepo subscriptions.Querier
	partyRepo        parties.Querier
}

func NewRateBusiness(subscriptionRepo subscriptions.Querier, partyRepo parties.Querier) Business {
	return &business{
		subscriptionRepo: subscriptionRepo,
		partyRepo:        partyRepo,
	}
}
