package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"trm.app/billing/domain"
	"trm.app/billing/model"
)

func TestSetRateOverride(t *testing.T) {
	testCases := []struct {
		name         string
		ratePercent  string
		businessErr  error
		expectCall   bool
		expectedCode errs.ErrCode
	}{
		{name: "valid_rate", ratePercent: "12.5", expectCall: true},
		{name: "rejected_by_business", ratePercent: "60", expectCall: true, businessErr: domain.Validation("override rate must be between 0 and 50"), expectedCode: errs.InvalidArgument},
		{name: "not_a_number", ratePercent: "twelve", expectedCode: errs.InvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(t)
			if tc.expectCall {
				rate := decimal.RequireFromString(tc.ratePercent)
				var result *model.RateOverride
				if tc.businessErr == nil {
					result = &model.RateOverride{PartyID: "employer-1", RatePercent: rate}
				}
				s.rates.EXPECT().
					SetOverride(gomock.Any(), "employer-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, got decimal.Decimal) (*model.RateOverride, error) {
						assert.True(t, rate.Equal(got))
						return result, tc.businessErr
					})
			}

			resp, err := s.SetRateOverride(context.Background(), "employer-1", &SetRateOverrideRequest{RatePercent: tc.ratePercent})
			if tc.expectedCode != errs.OK {
				require.Error(t, err)
				assert.Equal(t, tc.expectedCode, errs.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "12.5", resp.Override.RatePercent.String())
		})
	}
}

func TestClearRateOverride(t *testing.T) {
	s := newTestService(t)
	s.rates.EXPECT().ClearOverride(gomock.Any(), "employer-1").Return(nil)
	assert.NoError(t, s.ClearRateOverride(context.Background(), "employer-1"))
}

func TestGetRate(t *testing.T) {
	s := newTestService(t)
	s.rates.EXPECT().
		ResolveRate(gomock.Any(), s.schedule, "employer-1").
		Return(&model.RateResolution{PartyID: "employer-1", RatePercent: decimal.NewFromInt(10), Source: model.RateSourceSubscription, Tier: "enterprise"}, nil)

	resp, err := s.GetRate(context.Background(), "employer-1")
	require.NoError(t, err)
	assert.Equal(t, model.RateSourceSubscription, resp.Rate.Source)
	assert.Equal(t, "enterprise", resp.Rate.Tier)
}
