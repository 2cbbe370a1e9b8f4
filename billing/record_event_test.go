package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"trm.app/billing/domain"
	"trm.app/billing/model"
)

func TestRecordEvent(t *testing.T) {
	occurredAt := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	stored := &model.BillableEvent{
		ID:         7,
		Kind:       model.EventKindHire,
		PartyID:    "employer-1",
		Amount:     20_000_000,
		Currency:   "VND",
		SourceRef:  "placement-42",
		OccurredAt: occurredAt,
		State:      model.EventStatePending,
	}

	testCases := []struct {
		name          string
		created       bool
		businessErr   error
		expectedError string
	}{
		{name: "new_event", created: true},
		{name: "duplicate_event", created: false},
		{name: "conflicting_duplicate", businessErr: domain.InvalidState("hire event placement-42 was already recorded with different content"), expectedError: "different content"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(t)
			var result *model.BillableEvent
			if tc.businessErr == nil {
				result = stored
			}
			s.events.EXPECT().
				RecordEvent(gomock.Any(), &model.BillableEvent{
					Kind:       model.EventKindHire,
					PartyID:    "employer-1",
					Amount:     20_000_000,
					Currency:   "VND",
					SourceRef:  "placement-42",
					OccurredAt: occurredAt,
				}).
				Return(result, tc.created, tc.businessErr)

			resp, err := s.RecordEvent(context.Background(), &RecordEventRequest{
				IdempotencyKey: "key-1",
				Kind:           "hire",
				PartyID:        "employer-1",
				Amount:         20_000_000,
				Currency:       "VND",
				SourceRef:      "placement-42",
				OccurredAt:     occurredAt,
			})
			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				assert.Equal(t, errs.FailedPrecondition, errs.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), resp.Event.ID)
			assert.Equal(t, tc.created, resp.Created)
		})
	}
}

func TestRecordEventRequest_Validation(t *testing.T) {
	valid := func() *RecordEventRequest {
		return &RecordEventRequest{
			Kind:      "subscription_renewal",
			PartyID:   "employer-1",
			Amount:    990_000,
			Currency:  "VND",
			SourceRef: "sub-1:2024-02-01",
		}
	}

	testCases := []struct {
		name          string
		mutate        func(r *RecordEventRequest)
		expectedError string
	}{
		{name: "valid_request", mutate: func(r *RecordEventRequest) {}},
		{name: "unknown_kind", mutate: func(r *RecordEventRequest) { r.Kind = "refund" }, expectedError: "oneof"},
		{name: "missing_party", mutate: func(r *RecordEventRequest) { r.PartyID = "" }, expectedError: "required"},
		{name: "zero_amount", mutate: func(r *RecordEventRequest) { r.Amount = 0 }, expectedError: "gt"},
		{name: "invalid_currency", mutate: func(r *RecordEventRequest) { r.Currency = "VN1" }, expectedError: "alpha"},
		{name: "missing_source_ref", mutate: func(r *RecordEventRequest) { r.SourceRef = "" }, expectedError: "required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(req)
			err := req.Validate()
			if tc.expectedError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedError)
			assert.Equal(t, errs.InvalidArgument, errs.Code(err))
		})
	}
}
