package fee

import (
	"fmt"

	"github.com/shopspring/decimal"

	"trm.app/billing/domain"
)

var (
	hundred         = decimal.NewFromInt(100)
	maxOverrideRate = decimal.NewFromInt(50)
)

// Schedule is a versioned rate table with absolute fee caps. A Schedule is
// built once from configuration and passed explicitly to every calculation so
// tests can substitute their own.
type Schedule struct {
	Version     string
	TierRates   map[string]decimal.Decimal
	DefaultRate decimal.Decimal
	DunningRate decimal.Decimal
	MinFee      int64
	MaxFee      int64
}

// TierRate returns the rate for a tier slug, falling back to the default rate
// for unknown tiers. The second result is false when the fallback was used.
func (s Schedule) TierRate(tier string) (decimal.Decimal, bool) {
	if rate, ok := s.TierRates[tier]; ok {
		return rate, true
	}
	return s.DefaultRate, false
}

// Validate checks the schedule is internally consistent.
func (s Schedule) Validate() error {
	if s.Version == "" {
		return domain.Validation("schedule version is required")
	}
	if s.MinFee < 0 || s.MaxFee < 0 {
		return domain.Validation("fee caps must not be negative")
	}
	if s.MinFee > s.MaxFee {
		return domain.Validation(fmt.Sprintf("min fee %d exceeds max fee %d", s.MinFee, s.MaxFee))
	}
	if err := ValidateRate(s.DefaultRate); err != nil {
		return err
	}
	if err := ValidateRate(s.DunningRate); err != nil {
		return err
	}
	for tier, rate := range s.TierRates {
		if err := ValidateRate(rate); err != nil {
			return domain.Validation(fmt.Sprintf("tier %q: rate must be between 0 and 100", tier))
		}
	}
	return nil
}

// ValidateRate checks a percentage rate lies in [0, 100].
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return domain.Validation(fmt.Sprintf("rate %s must be between 0 and 100", rate.String()))
	}
	return nil
}

// ValidateOverrideRate checks a manually configured party rate lies in [0, 50].
func ValidateOverrideRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxOverrideRate) {
		return domain.Validation(fmt.Sprintf("override rate %s must be between 0 and 50", rate.String()))
	}
	return nil
}
