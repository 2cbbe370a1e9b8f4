package rate

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"encore.dev/rlog"

	"trm.app/billing/domain"
	"trm.app/billing/fee"
	"trm.app/billing/model"
)

// ResolveRate picks the rate for a party: the tier rate of a live subscription
// wins, then a manual override, then the schedule default.
func (b *business) ResolveRate(ctx context.Context, schedule fee.Schedule, partyID string) (*model.RateResolution, error) {
	if partyID == "" {
		return nil, domain.Validation("party id is required")
	}

	resolution := &model.RateResolution{
		PartyID:         partyID,
		ScheduleVersion: schedule.Version,
	}

	sub, err := b.subscriptionRepo.FindActiveSubscription(ctx, partyID)
	switch {
	case err == nil:
		rate, known := schedule.TierRate(sub.Tier)
		if !known {
			rlog.Warn("unknown subscription tier, using default rate", "party_id", partyID, "tier", sub.Tier)
		}
		resolution.RatePercent = rate
		resolution.Source = model.RateSourceSubscription
		resolution.Tier = sub.Tier
		return resolution, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, domain.StoreUnavailable("failed to look up subscription", err)
	}

	override, err := b.partyRepo.GetRateOverride(ctx, partyID)
	switch {
	case err == nil:
		resolution.RatePercent = fromBasisPoints(override.RateBps)
		resolution.Source = model.RateSourceOverride
		return resolution, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, domain.StoreUnavailable("failed to look up rate override", err)
	}

	resolution.RatePercent = schedule.DefaultRate
	resolution.Source = model.RateSourceDefault
	return resolution, nil
}

func fromBasisPoints(bps int32) decimal.Decimal {
	return decimal.New(int64(bps), -2)
}

func toBasisPoints(rate decimal.Decimal) (int32, error) {
	shifted := rate.Shift(2)
	if !shifted.IsInteger() {
		return 0, domain.Validation("rate supports at most two decimal places")
	}
	return int32(shifted.IntPart()), nil
}
