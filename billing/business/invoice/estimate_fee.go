package invoice

import (
	"context"

	"trm.app/billing/fee"
	"trm.app/billing/model"
)

// EstimateFee prices a hypothetical hire for the party without writing anything.
func (b *business) EstimateFee(ctx context.Context, partyID string, baseAmount int64, currency string) (*model.FeeEstimate, error) {
	resolution, err := b.rates.ResolveRate(ctx, b.schedule, partyID)
	if err != nil {
		return nil, err
	}
	result, err := fee.Calculate(b.schedule, baseAmount, resolution.RatePercent)
	if err != nil {
		return nil, err
	}
	return &model.FeeEstimate{
		PartyID:         partyID,
		BaseAmount:      baseAmount,
		Currency:        currency,
		RatePercent:     resolution.RatePercent,
		RateSource:      resolution.Source,
		Tier:            resolution.Tier,
		BaseFee:         result.BaseFee,
		Fee:             result.Fee,
		MinFeeApplied:   result.MinFeeApplied,
		MaxFeeApplied:   result.MaxFeeApplied,
		ScheduleVersion: resolution.ScheduleVersion,
	}, nil
}
