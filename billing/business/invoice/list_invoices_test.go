package invoice

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trm.app/billing/domain"
	"trm.app/billing/model"
)

func TestListInvoices(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var paidID int64
	for i := 0; i < 5; i++ {
		event := f.insertEvent(t, model.EventKindHire, "org-1", 10_000_000, fmt.Sprintf("hire-%d", i))
		inv, err := f.business.CreateInvoice(context.Background(), event.ID)
		require.NoError(t, err)
		paidID = inv.ID
	}
	other := f.insertEvent(t, model.EventKindHire, "org-2", 10_000_000, "hire-other")
	_, err := f.business.CreateInvoice(context.Background(), other.ID)
	require.NoError(t, err)
	_, err = f.business.UpdateInvoiceStatus(context.Background(), paidID, model.InvoiceStatusPaid)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		filter        model.ListFilter
		expectedLen   int
		expectedTotal int64
	}{
		{name: "all_for_party", filter: model.ListFilter{PartyID: "org-1", Limit: 20}, expectedLen: 5, expectedTotal: 5},
		{name: "paged", filter: model.ListFilter{PartyID: "org-1", Limit: 2, Offset: 4}, expectedLen: 1, expectedTotal: 5},
		{name: "by_status", filter: model.ListFilter{PartyID: "org-1", Status: "paid", Limit: 20}, expectedLen: 1, expectedTotal: 1},
		{name: "other_party", filter: model.ListFilter{PartyID: "org-2", Limit: 20}, expectedLen: 1, expectedTotal: 1},
		{name: "unknown_party", filter: model.ListFilter{PartyID: "org-3", Limit: 20}, expectedLen: 0, expectedTotal: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, total, err := f.business.ListInvoices(context.Background(), tc.filter)
			require.NoError(t, err)
			assert.Len(t, result, tc.expectedLen)
			assert.Equal(t, tc.expectedTotal, total)
			for _, inv := range result {
				assert.Equal(t, tc.filter.PartyID, inv.PartyID)
				assert.Len(t, inv.LineItems, 1)
			}
		})
	}

	_, _, err = f.business.ListInvoices(context.Background(), model.ListFilter{})
	require.ErrorIs(t, err, domain.ErrValidation)
}
