package fee

import (
	"fmt"

	"github.com/shopspring/decimal"

	"trm.app/billing/domain"
)

// Result is a computed fee and whether a cap changed it.
type Result struct {
	BaseAmount    int64
	RatePercent   decimal.Decimal
	BaseFee       int64
	Fee           int64
	MinFeeApplied bool
	MaxFeeApplied bool
}

// Calculate computes round(baseAmount * ratePercent / 100), rounding half up
// to whole currency units, and clamps the result to the schedule's caps.
// Invalid input is rejected, never clamped.
func Calculate(s Schedule, baseAmount int64, ratePercent decimal.Decimal) (Result, error) {
	if baseAmount <= 0 {
		return Result{}, domain.Validation(fmt.Sprintf("base amount %d must be positive", baseAmount))
	}
	if err := ValidateRate(ratePercent); err != nil {
		return Result{}, err
	}

	// Round rounds half away from zero, which is half up for positive values.
	baseFee := decimal.NewFromInt(baseAmount).Mul(ratePercent).Div(hundred).Round(0).IntPart()

	result := Result{
		BaseAmount:  baseAmount,
		RatePercent: ratePercent,
		BaseFee:     baseFee,
		Fee:         baseFee,
	}
	switch {
	case baseFee < s.MinFee:
		result.Fee = s.MinFee
		result.MinFeeApplied = true
	case baseFee > s.MaxFee:
		result.Fee = s.MaxFee
		result.MaxFeeApplied = true
	}
	return result, nil
}
