package billing

import (
	"testing"

	"go.temporal.io/sdk/mocks"
	"go.uber.org/mock/gomock"

	"trm.app/billing/mocks/business/event_business"
	"trm.app/billing/mocks/business/invoice_business"
	"trm.app/billing/mocks/business/rate_business"
	"trm.app/billing/scheduler"
	"trm.app/billing/workflow"
)

// Run tests using `encore test`, which compiles the Encore app and then runs `go test`.
// Learn more: https://encore.dev/docs/go/develop/testing

type testService struct {
	*Service
	events   *event_business.MockBusiness
	invoices *invoice_business.MockBusiness
	rates    *rate_business.MockBusiness
	temporal *mocks.Client
}

func newTestService(t *testing.T) *testService {
	ctrl := gomock.NewController(t)
	ts := &testService{
		events:   event_business.NewMockBusiness(ctrl),
		invoices: invoice_business.NewMockBusiness(ctrl),
		rates:    rate_business.NewMockBusiness(ctrl),
		temporal: mocks.NewClient(t),
	}
	ts.Service = &Service{
		events:   ts.events,
		invoices: ts.invoices,
		rates:    ts.rates,
		runner:   scheduler.NewRunner(ts.temporal, "billing-tasks-test", 2, workflow.ItemLimits{}),
		temporal: ts.temporal,
	}
	return ts
}
