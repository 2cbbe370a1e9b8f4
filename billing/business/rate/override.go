package rate

import (
	"context"

	"github.com/shopspring/decimal"

	"trm.app/billing/domain"
	"trm.app/billing/fee"
	"trm.app/billing/model"
	"trm.app/billing/repository/parties"
)

func (b *business) SetOverride(ctx context.Context, partyID string, ratePercent decimal.Decimal) (*model.RateOverride, error) {
	if partyID == "" {
		return nil, domain.Validation("party id is required")
	}
	if err := fee.ValidateOverrideRate(ratePercent); err != nil {
		return nil, err
	}
	bps, err := toBasisPoints(ratePercent)
	if err != nil {
		return nil, err
	}

	stored, err := b.partyRepo.UpsertRateOverride(ctx, parties.UpsertRateOverrideParams{
		PartyID: partyID,
		RateBps: bps,
	})
	if err != nil {
		return nil, domain.StoreUnavailable("failed to store rate override", err)
	}

	return &model.RateOverride{
		PartyID:     stored.PartyID,
		RatePercent: fromBasisPoints(stored.RateBps),
	}, nil
}

func (b *business) ClearOverride(ctx context.Context, partyID string) error {
	if partyID == "" {
		return domain.Validation("party id is required")
	}
	if _, err := b.partyRepo.DeleteRateOverride(ctx, partyID); err != nil {
		return domain.StoreUnavailable("failed to delete rate override", err)
	}
	return nil
}
