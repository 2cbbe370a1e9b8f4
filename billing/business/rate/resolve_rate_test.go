package rate

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trm.app/billing/domain"
	"trm.app/billing/fee"
	"trm.app/billing/mocks/repository/party_repo"
	"trm.app/billing/mocks/repository/subscription_repo"
	"trm.app/billing/model"
	"trm.app/billing/repository/parties"
	"trm.app/billing/repository/subscriptions"
)

func testSchedule() fee.Schedule {
	return fee.Schedule{
		Version: "2024-01",
		TierRates: map[string]decimal.Decimal{
			"basic":      decimal.NewFromInt(15),
			"enterprise": decimal.NewFromInt(10),
		},
		DefaultRate: decimal.NewFromInt(18),
		DunningRate: decimal.NewFromInt(2),
		MinFee:      50_000,
		MaxFee:      5_000_000,
	}
}

func TestResolveRate(t *testing.T) {
	testCases := []struct {
		name            string
		partyID         string
		subscription    subscriptions.Subscription
		subscriptionErr error
		expectOverride  bool
		override        parties.PartyRateOverride
		overrideErr     error
		expectedRate    decimal.Decimal
		expectedSource  model.RateSource
		expectedTier    string
		expectedError   error
	}{
		{
			name:           "subscription_tier_wins",
			partyID:        "org-1",
			subscription:   subscriptions.Subscription{ID: "sub-1", PartyID: "org-1", Tier: "enterprise", Status: "active"},
			expectedRate:   decimal.NewFromInt(10),
			expectedSource: model.RateSourceSubscription,
			expectedTier:   "enterprise",
		},
		{
			name:           "unknown_tier_uses_default",
			partyID:        "org-2",
			subscription:   subscriptions.Subscription{ID: "sub-2", PartyID: "org-2", Tier: "legacy", Status: "trialing"},
			expectedRate:   decimal.NewFromInt(18),
			expectedSource: model.RateSourceSubscription,
			expectedTier:   "legacy",
		},
		{
			name:            "override_without_subscription",
			partyID:         "org-3",
			subscriptionErr: pgx.ErrNoRows,
			expectOverride:  true,
			override:        parties.PartyRateOverride{PartyID: "org-3", RateBps: 1250},
			expectedRate:    decimal.RequireFromString("12.5"),
			expectedSource:  model.RateSourceOverride,
		},
		{
			name:            "default_rate",
			partyID:         "org-4",
			subscriptionErr: pgx.ErrNoRows,
			expectOverride:  true,
			overrideErr:     pgx.ErrNoRows,
			expectedRate:    decimal.NewFromInt(18),
			expectedSource:  model.RateSourceDefault,
		},
		{
			name:            "subscription_lookup_failure",
			partyID:         "org-5",
			subscriptionErr: assert.AnError,
			expectedError:   domain.ErrStoreUnavailable,
		},
		{
			name:            "override_lookup_failure",
			partyID:         "org-6",
			subscriptionErr: pgx.ErrNoRows,
			expectOverride:  true,
			overrideErr:     assert.AnError,
			expectedError:   domain.ErrStoreUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			subRepo := subscription_repo.NewMockQuerier(ctrl)
			partyRepo := party_repo.NewMockQuerier(ctrl)
			b := NewRateBusiness(subRepo, partyRepo)

			subRepo.EXPECT().
				FindActiveSubscription(gomock.Any(), tc.partyID).
				Return(tc.subscription, tc.subscriptionErr).
				Times(1)
			if tc.expectOverride {
				partyRepo.EXPECT().
					GetRateOverride(gomock.Any(), tc.partyID).
					Return(tc.override, tc.overrideErr).
					Times(1)
			}

			resolution, err := b.ResolveRate(context.Background(), testSchedule(), tc.partyID)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, resolution)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.expectedRate.Equal(resolution.RatePercent), "rate %s", resolution.RatePercent)
			assert.Equal(t, tc.expectedSource, resolution.Source)
			assert.Equal(t, tc.expectedTier, resolution.Tier)
			assert.Equal(t, "2024-01", resolution.ScheduleVersion)
			assert.Equal(t, tc.partyID, resolution.PartyID)
		})
	}
}

func TestResolveRate_RequiresParty(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := NewRateBusiness(subscription_repo.NewMockQuerier(ctrl), party_repo.NewMockQuerier(ctrl))

	_, err := b.ResolveRate(context.Background(), testSchedule(), "")
	require.ErrorIs(t, err, domain.ErrValidation)
}
