package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"trm.app/billing/model"
)

func TestListTransactions(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		request        *PageRequest
		expectedFilter model.ListFilter
		expectedPage   int
	}{
		{
			name:           "defaults",
			request:        &PageRequest{},
			expectedFilter: model.ListFilter{PartyID: "employer-1", Limit: 10},
			expectedPage:   1,
		},
		{
			name:           "limit_is_capped",
			request:        &PageRequest{Limit: 1000, Offset: 20},
			expectedFilter: model.ListFilter{PartyID: "employer-1", Limit: 100, Offset: 20},
			expectedPage:   1,
		},
		{
			name:           "skip",
			request:        &PageRequest{Limit: 5, Skip: 15},
			expectedFilter: model.ListFilter{PartyID: "employer-1", Limit: 5, Offset: 15},
			expectedPage:   4,
		},
		{
			name:           "page_is_one_based",
			request:        &PageRequest{Limit: 20, Page: 3},
			expectedFilter: model.ListFilter{PartyID: "employer-1", Limit: 20, Offset: 40},
			expectedPage:   3,
		},
		{
			name:           "first_page",
			request:        &PageRequest{Page: 1},
			expectedFilter: model.ListFilter{PartyID: "employer-1", Limit: 10},
			expectedPage:   1,
		},
		{
			name:    "status_and_range",
			request: &PageRequest{Status: "invoiced", From: "2024-01-01T07:00:00+07:00", To: "2024-02-01T00:00:00Z"},
			expectedFilter: model.ListFilter{
				PartyID: "employer-1",
				Status:  "invoiced",
				From:    &from,
				To:      &to,
				Limit:   10,
			},
			expectedPage: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(t)
			s.events.EXPECT().
				ListEvents(gomock.Any(), tc.expectedFilter).
				Return([]*model.BillableEvent{{ID: 2}, {ID: 1}}, int64(12), nil)

			resp, err := s.ListTransactions(context.Background(), "employer-1", tc.request)
			require.NoError(t, err)
			require.Len(t, resp.Transactions, 2)
			assert.Equal(t, int64(2), resp.Transactions[0].ID)
			assert.Equal(t, int64(12), resp.TotalCount)
			assert.Equal(t, int(tc.expectedFilter.Limit), resp.Limit)
			assert.Equal(t, int(tc.expectedFilter.Offset), resp.Offset)
			assert.Equal(t, int(tc.expectedFilter.Offset), resp.Skip)
			assert.Equal(t, tc.expectedPage, resp.Page)
		})
	}
}

func TestListTransactions_InvalidFilter(t *testing.T) {
	testCases := []struct {
		name    string
		request *PageRequest
	}{
		{name: "bad_from", request: &PageRequest{From: "yesterday"}},
		{name: "bad_to", request: &PageRequest{To: "2024-02-01"}},
		{name: "empty_range", request: &PageRequest{From: "2024-02-01T00:00:00Z", To: "2024-01-01T00:00:00Z"}},
		{name: "negative_offset", request: &PageRequest{Offset: -1}},
		{name: "negative_skip", request: &PageRequest{Skip: -5}},
		{name: "negative_page", request: &PageRequest{Page: -1}},
		{name: "skip_and_page", request: &PageRequest{Skip: 10, Page: 2}},
		{name: "offset_and_skip", request: &PageRequest{Offset: 10, Skip: 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(t)
			_, err := s.ListTransactions(context.Background(), "employer-1", tc.request)
			require.Error(t, err)
			assert.Equal(t, errs.InvalidArgument, errs.Code(err))
		})
	}
}
