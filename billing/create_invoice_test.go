package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"encore.dev/beta/errs"

	"trm.app/billing/domain"
	"trm.app/billing/model"
)

func TestCreateInvoice(t *testing.T) {
	invoice := &model.Invoice{
		ID:      3,
		Number:  "PH-202401-0007",
		Type:    model.InvoiceTypePayPerHire,
		EventID: 11,
		Total:   3_600_000,
		Status:  model.InvoiceStatusPending,
	}

	testCases := []struct {
		name            string
		businessReturn  *model.Invoice
		businessErr     error
		alreadyInvoiced bool
		expectedCode    errs.ErrCode
	}{
		{name: "created", businessReturn: invoice},
		{name: "already_invoiced_returns_existing", businessReturn: invoice, businessErr: domain.AlreadyInvoiced(), alreadyInvoiced: true},
		{name: "event_not_found", businessErr: domain.EventNotFound(), expectedCode: errs.NotFound},
		{name: "event_not_pending", businessErr: domain.InvalidState("billable event is paid, only pending events can be invoiced"), expectedCode: errs.FailedPrecondition},
		{name: "store_unavailable", businessErr: domain.StoreUnavailable("failed to get billable event", errors.New("conn reset")), expectedCode: errs.Unavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(t)
			s.invoices.EXPECT().CreateInvoice(gomock.Any(), int64(11)).Return(tc.businessReturn, tc.businessErr)

			resp, err := s.CreateInvoice(context.Background(), 11)
			if tc.expectedCode != errs.OK {
				require.Error(t, err)
				assert.Equal(t, tc.expectedCode, errs.Code(err))
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "PH-202401-0007", resp.Invoice.Number)
			assert.Equal(t, tc.alreadyInvoiced, resp.AlreadyInvoiced)
		})
	}
}

func TestGetInvoice(t *testing.T) {
	s := newTestService(t)
	s.invoices.EXPECT().GetInvoice(gomock.Any(), int64(3)).Return(&model.Invoice{ID: 3, Number: "SUB-202401-0001"}, nil)
	s.invoices.EXPECT().GetInvoice(gomock.Any(), int64(4)).Return(nil, domain.InvoiceNotFound())

	resp, err := s.GetInvoice(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "SUB-202401-0001", resp.Invoice.Number)

	_, err = s.GetInvoice(context.Background(), 4)
	require.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	assert.Equal(t, errs.NotFound, errs.Code(err))
}

func TestListInvoices(t *testing.T) {
	testCases := []struct {
		name           string
		request        *PageRequest
		expectedOffset int32
		expectedPage   int
	}{
		{
			name:           "offset",
			request:        &PageRequest{Limit: 25, Offset: 50, Status: "pending"},
			expectedOffset: 50,
			expectedPage:   3,
		},
		{
			name:           "skip",
			request:        &PageRequest{Limit: 25, Skip: 30, Status: "pending"},
			expectedOffset: 30,
			expectedPage:   2,
		},
		{
			name:           "page",
			request:        &PageRequest{Limit: 25, Page: 2, Status: "pending"},
			expectedOffset: 25,
			expectedPage:   2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestService(t)
			s.invoices.EXPECT().
				ListInvoices(gomock.Any(), model.ListFilter{PartyID: "employer-1", Status: "pending", Limit: 25, Offset: tc.expectedOffset}).
				Return([]*model.Invoice{{ID: 9}, {ID: 8}}, int64(52), nil)

			resp, err := s.ListInvoices(context.Background(), "employer-1", tc.request)
			require.NoError(t, err)
			require.Len(t, resp.Invoices, 2)
			assert.Equal(t, int64(9), resp.Invoices[0].ID)
			assert.Equal(t, int64(52), resp.TotalCount)
			assert.Equal(t, 25, resp.Limit)
			assert.Equal(t, int(tc.expectedOffset), resp.Offset)
			assert.Equal(t, int(tc.expectedOffset), resp.Skip)
			assert.Equal(t, tc.expectedPage, resp.Page)
		})
	}
}

func TestListInvoices_SkipAndPage(t *testing.T) {
	s := newTestService(t)
	_, err := s.ListInvoices(context.Background(), "employer-1", &PageRequest{Skip: 25, Page: 2})
	require.Error(t, err)
	assert.Equal(t, errs.InvalidArgument, errs.Code(err))
}

func TestUpdateInvoiceStatus(t *testing.T) {
	s := newTestService(t)
	s.invoices.EXPECT().
		UpdateInvoiceStatus(gomock.Any(), int64(3), model.InvoiceStatusPaid).
		Return(&model.Invoice{ID: 3, Status: model.InvoiceStatusPaid}, nil)
	s.invoices.EXPECT().
		UpdateInvoiceStatus(gomock.Any(), int64(4), model.InvoiceStatusFailed).
		Return(nil, domain.InvalidState("invoice is cancelled"))

	resp, err := s.UpdateInvoiceStatus(context.Background(), 3, &UpdateInvoiceStatusRequest{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusPaid, resp.Invoice.Status)

	_, err = s.UpdateInvoiceStatus(context.Background(), 4, &UpdateInvoiceStatusRequest{Status: "failed"})
	assert.Equal(t, errs.FailedPrecondition, errs.Code(err))
}

func TestUpdateInvoiceStatusRequest_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{name: "paid", status: "paid"},
		{name: "failed", status: "failed"},
		{name: "cancelled", status: "cancelled"},
		{name: "pending_is_not_an_outcome", status: "pending", wantErr: true},
		{name: "empty", status: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := (&UpdateInvoiceStatusRequest{Status: tc.status}).Validate()
			if tc.wantErr {
				assert.Equal(t, errs.InvalidArgument, errs.Code(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
