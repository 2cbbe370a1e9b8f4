package fee

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trm.app/billing/domain"
)

func testSchedule() Schedule {
	return Schedule{
		Version: "2024-01",
		TierRates: map[string]decimal.Decimal{
			"basic":      decimal.NewFromInt(15),
			"growth":     decimal.NewFromInt(12),
			"enterprise": decimal.NewFromInt(10),
		},
		DefaultRate: decimal.NewFromInt(18),
		DunningRate: decimal.NewFromInt(2),
		MinFee:      50_000,
		MaxFee:      5_000_000,
	}
}

func TestCalculate(t *testing.T) {
	schedule := testSchedule()

	testCases := []struct {
		name          string
		baseAmount    int64
		rate          decimal.Decimal
		expectedBase  int64
		expectedFee   int64
		expectMin     bool
		expectMax     bool
		expectedError bool
	}{
		{
			name:         "no_cap_applies",
			baseAmount:   2_000_000,
			rate:         decimal.NewFromInt(10),
			expectedBase: 200_000,
			expectedFee:  200_000,
		},
		{
			name:         "min_cap_applied",
			baseAmount:   100_000,
			rate:         decimal.NewFromInt(10),
			expectedBase: 10_000,
			expectedFee:  50_000,
			expectMin:    true,
		},
		{
			name:         "max_cap_applied",
			baseAmount:   100_000_000,
			rate:         decimal.NewFromInt(10),
			expectedBase: 10_000_000,
			expectedFee:  5_000_000,
			expectMax:    true,
		},
		{
			name:         "zero_rate_hits_min",
			baseAmount:   1_000_000,
			rate:         decimal.Zero,
			expectedBase: 0,
			expectedFee:  50_000,
			expectMin:    true,
		},
		{
			name:         "rounds_half_up",
			baseAmount:   1_000_005,
			rate:         decimal.NewFromInt(10),
			expectedBase: 100_001,
			expectedFee:  100_001,
		},
		{
			name:         "rounds_down_below_half",
			baseAmount:   1_000_004,
			rate:         decimal.NewFromInt(10),
			expectedBase: 100_000,
			expectedFee:  100_000,
		},
		{
			name:         "fractional_rate",
			baseAmount:   1_000_000,
			rate:         decimal.RequireFromString("12.5"),
			expectedBase: 125_000,
			expectedFee:  125_000,
		},
		{
			name:          "zero_amount_rejected",
			baseAmount:    0,
			rate:          decimal.NewFromInt(10),
			expectedError: true,
		},
		{
			name:          "negative_amount_rejected",
			baseAmount:    -1,
			rate:          decimal.NewFromInt(10),
			expectedError: true,
		},
		{
			name:          "negative_rate_rejected",
			baseAmount:    1_000_000,
			rate:          decimal.NewFromInt(-1),
			expectedError: true,
		},
		{
			name:          "rate_above_hundred_rejected",
			baseAmount:    1_000_000,
			rate:          decimal.RequireFromString("100.01"),
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Calculate(schedule, tc.baseAmount, tc.rate)

			if tc.expectedError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedBase, result.BaseFee)
			assert.Equal(t, tc.expectedFee, result.Fee)
			assert.Equal(t, tc.expectMin, result.MinFeeApplied)
			assert.Equal(t, tc.expectMax, result.MaxFeeApplied)
		})
	}
}

func TestCalculate_FeeAlwaysWithinBounds(t *testing.T) {
	schedule := testSchedule()
	amounts := []int64{1, 999, 100_000, 333_333, 2_000_000, 49_999_999, 1 << 40}
	rates := []string{"0", "0.5", "7", "10", "33.33", "50", "100"}

	for _, amount := range amounts {
		for _, r := range rates {
			result, err := Calculate(schedule, amount, decimal.RequireFromString(r))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.Fee, schedule.MinFee, "amount=%d rate=%s", amount, r)
			assert.LessOrEqual(t, result.Fee, schedule.MaxFee, "amount=%d rate=%s", amount, r)
		}
	}
}

func TestScheduleValidate(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(s *Schedule)
		expectedError string
	}{
		{
			name:   "valid",
			mutate: func(s *Schedule) {},
		},
		{
			name:          "missing_version",
			mutate:        func(s *Schedule) { s.Version = "" },
			expectedError: "schedule version is required",
		},
		{
			name:          "min_exceeds_max",
			mutate:        func(s *Schedule) { s.MinFee = s.MaxFee + 1 },
			expectedError: "exceeds max fee",
		},
		{
			name:          "tier_rate_out_of_range",
			mutate:        func(s *Schedule) { s.TierRates["basic"] = decimal.NewFromInt(101) },
			expectedError: `tier "basic"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := testSchedule()
			tc.mutate(&s)

			err := s.Validate()
			if tc.expectedError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedError)
		})
	}
}

func TestTierRate(t *testing.T) {
	s := testSchedule()

	rate, ok := s.TierRate("growth")
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(12)))

	rate, ok = s.TierRate("platinum")
	assert.False(t, ok)
	assert.True(t, rate.Equal(s.DefaultRate))
}

func TestValidateOverrideRate(t *testing.T) {
	assert.NoError(t, ValidateOverrideRate(decimal.Zero))
	assert.NoError(t, ValidateOverrideRate(decimal.NewFromInt(50)))
	assert.Error(t, ValidateOverrideRate(decimal.RequireFromString("50.5")))
	assert.Error(t, ValidateOverrideRate(decimal.NewFromInt(-2)))
}
