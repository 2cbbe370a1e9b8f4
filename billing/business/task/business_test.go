package task

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trm.app/billing/business/invoice"
	"trm.app/billing/business/rate"
	"trm.app/billing/domain"
	"trm.app/billing/fee"
	"trm.app/billing/mocks/business/notify_publisher"
	"trm.app/billing/model"
	"trm.app/billing/repository/events"
	"trm.app/billing/repository/memdb"
	"trm.app/billing/repository/subscriptions"
)

type fixture struct {
	db        *memdb.DB
	publisher *notify_publisher.MockPublisher
	invoices  invoice.Business
	tasks     Business
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithLimit(t, 100)
}

func newFixtureWithLimit(t *testing.T, selectLimit int32) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	db := memdb.New()
	repo := db.Repository()
	publisher := notify_publisher.NewMockPublisher(ctrl)

	schedule := fee.Schedule{
		Version:     "2024-01",
		TierRates:   map[string]decimal.Decimal{"basic": decimal.NewFromInt(15)},
		DefaultRate: decimal.NewFromInt(18),
		DunningRate: decimal.NewFromInt(2),
		MinFee:      50_000,
		MaxFee:      5_000_000,
	}
	invoices := invoice.NewInvoiceBusiness(
		repo,
		domain.NewLedger(db),
		rate.NewRateBusiness(repo.Subscriptions, repo.Parties),
		publisher,
		schedule,
		14*24*time.Hour,
	)
	tasks := NewTaskBusiness(repo, invoices, publisher, Config{
		PayPerHireGrace: 24 * time.Hour,
		WarningWindow:   7 * 24 * time.Hour,
		SelectLimit:     selectLimit,
	})
	return &fixture{db: db, publisher: publisher, invoices: invoices, tasks: tasks}
}

func (f *fixture) insertHire(t *testing.T, sourceRef string, occurredAt time.Time) events.BillableEvent {
	t.Helper()
	row, err := f.db.Repository().Events.InsertEvent(context.Background(), events.InsertEventParams{
		Kind:       string(model.EventKindHire),
		PartyID:    "org-1",
		Amount:     10_000_000,
		Currency:   "VND",
		SourceRef:  sourceRef,
		OccurredAt: pgtype.Timestamptz{Time: occurredAt, Valid: true},
	})
	require.NoError(t, err)
	return row
}

// run selects and processes every item of one task run in order.
func (f *fixture) run(t *testing.T, task model.TaskName, asOf time.Time) []*model.ItemResult {
	t.Helper()
	items, err := f.tasks.SelectItems(context.Background(), task, asOf)
	require.NoError(t, err)
	results := make([]*model.ItemResult, 0, len(items))
	for _, id := range items {
		result, err := f.tasks.ProcessItem(context.Background(), task, id, asOf)
		require.NoError(t, err)
		results = append(results, result)
	}
	return results
}

func TestPayPerHire_GraceAndRerun(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	asOf := time.Now().UTC().Truncate(time.Second)

	old := f.insertHire(t, "hire-old", asOf.Add(-48*time.Hour))
	f.insertHire(t, "hire-new", asOf.Add(-time.Hour))

	results := f.run(t, model.TaskGeneratePayPerHire, asOf)
	require.Len(t, results, 1)
	assert.Equal(t, strconv.FormatInt(old.ID, 10), results[0].ItemID)
	assert.Equal(t, model.ItemStatusInvoiced, results[0].Status)
	assert.Contains(t, results[0].InvoiceNumber, "PH-")

	// A second run over the same window selects nothing new.
	assert.Empty(t, f.run(t, model.TaskGeneratePayPerHire, asOf))
	assert.Equal(t, 1, f.db.InvoiceCount())

	// Reprocessing a stale selection is a no-op.
	again, err := f.tasks.ProcessItem(context.Background(), model.TaskGeneratePayPerHire, results[0].ItemID, asOf)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusAlreadyInvoiced, again.Status)
	assert.Equal(t, results[0].InvoiceNumber, again.InvoiceNumber)
}

func TestGenerateRenewals(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	asOf := time.Now().UTC().Truncate(time.Second)
	periodEnd := asOf.Add(-time.Hour)

	f.db.PutSubscription(subscriptions.Subscription{
		ID:               "sub-renew",
		PartyID:          "org-1",
		Tier:             "basic",
		Status:           "active",
		Price:            2_490_000,
		Currency:         "VND",
		CurrentPeriodEnd: pgtype.Timestamptz{Time: periodEnd, Valid: true},
		AutoRenew:        true,
	})
	f.db.PutSubscription(subscriptions.Subscription{
		ID:               "sub-free",
		PartyID:          "org-2",
		Tier:             "basic",
		Status:           "active",
		Price:            0,
		Currency:         "VND",
		CurrentPeriodEnd: pgtype.Timestamptz{Time: periodEnd, Valid: true},
		AutoRenew:        true,
	})
	f.db.PutSubscription(subscriptions.Subscription{
		ID:               "sub-later",
		PartyID:          "org-3",
		Tier:             "basic",
		Status:           "active",
		Price:            2_490_000,
		Currency:         "VND",
		CurrentPeriodEnd: pgtype.Timestamptz{Time: asOf.AddDate(0, 0, 10), Valid: true},
		AutoRenew:        true,
	})

	results := f.run(t, model.TaskGenerateRenewals, asOf)
	require.Len(t, results, 1)
	assert.Equal(t, model.ItemStatusInvoiced, results[0].Status)
	assert.Contains(t, results[0].InvoiceNumber, "SUB-")

	event, err := f.db.Repository().Events.GetEventBySourceRef(context.Background(), events.GetEventBySourceRefParams{
		Kind:      string(model.EventKindSubscriptionRenewal),
		SourceRef: model.RenewalSourceRef("sub-renew", periodEnd),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2_490_000), event.Amount)
	assert.Equal(t, string(model.EventStateInvoiced), event.State)

	// The period has not moved, but the renewal event for it already exists.
	assert.Empty(t, f.run(t, model.TaskGenerateRenewals, asOf))
	assert.Equal(t, 1, f.db.InvoiceCount())
}

func TestProcessDunning(t *testing.T) {
	f := newFixture(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	asOf := time.Now().UTC().Truncate(time.Second)

	// Due 14 days after it occurred, so 20 days ago makes it overdue.
	hire := f.insertHire(t, "hire-overdue", asOf.AddDate(0, 0, -20))
	original, err := f.invoices.CreateInvoice(context.Background(), hire.ID)
	require.NoError(t, err)

	results := f.run(t, model.TaskProcessDunning, asOf)
	require.Len(t, results, 1)
	assert.Equal(t, model.ItemStatusInvoiced, results[0].Status)
	assert.Contains(t, results[0].InvoiceNumber, "DUN-")

	event, err := f.db.Repository().Events.GetEventBySourceRef(context.Background(), events.GetEventBySourceRefParams{
		Kind:      string(model.EventKindDunning),
		SourceRef: original.Number,
	})
	require.NoError(t, err)
	assert.Equal(t, original.Total, event.Amount)

	assert.Empty(t, f.run(t, model.TaskProcessDunning, asOf))
	assert.Equal(t, 2, f.db.InvoiceCount())
}

func TestProcessDunning_BacklogLargerThanLimit(t *testing.T) {
	f := newFixtureWithLimit(t, 2)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(6)
	asOf := time.Now().UTC().Truncate(time.Second)

	var numbers []string
	for i := 0; i < 3; i++ {
		hire := f.insertHire(t, "hire-backlog-"+strconv.Itoa(i), asOf.AddDate(0, 0, -20))
		inv, err := f.invoices.CreateInvoice(context.Background(), hire.ID)
		require.NoError(t, err)
		numbers = append(numbers, inv.Number)
	}

	assert.Len(t, f.run(t, model.TaskProcessDunning, asOf), 2)
	// Invoices already dunned no longer take up the selection limit.
	assert.Len(t, f.run(t, model.TaskProcessDunning, asOf), 1)
	assert.Empty(t, f.run(t, model.TaskProcessDunning, asOf))

	for _, number := range numbers {
		event, err := f.db.Repository().Events.GetEventBySourceRef(context.Background(), events.GetEventBySourceRefParams{
			Kind:      string(model.EventKindDunning),
			SourceRef: number,
		})
		require.NoError(t, err, number)
		assert.Equal(t, string(model.EventStateInvoiced), event.State)
	}
	assert.Equal(t, 6, f.db.InvoiceCount())
}

func TestGenerateRenewals_BacklogLargerThanLimit(t *testing.T) {
	f := newFixtureWithLimit(t, 2)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	asOf := time.Now().UTC().Truncate(time.Second)
	periodEnd := asOf.Add(-time.Hour)

	// Free subscriptions sort first and never renew, so they must not fill the limit.
	for _, id := range []string{"sub-0-free", "sub-1-free", "sub-a", "sub-b", "sub-c"} {
		price := int64(2_490_000)
		if strings.HasSuffix(id, "-free") {
			price = 0
		}
		f.db.PutSubscription(subscriptions.Subscription{
			ID:               id,
			PartyID:          "org-" + id,
			Tier:             "basic",
			Status:           "active",
			Price:            price,
			Currency:         "VND",
			CurrentPeriodEnd: pgtype.Timestamptz{Time: periodEnd, Valid: true},
			AutoRenew:        true,
		})
	}

	assert.Len(t, f.run(t, model.TaskGenerateRenewals, asOf), 2)
	assert.Len(t, f.run(t, model.TaskGenerateRenewals, asOf), 1)
	assert.Empty(t, f.run(t, model.TaskGenerateRenewals, asOf))
	assert.Equal(t, 3, f.db.InvoiceCount())

	for _, id := range []string{"sub-a", "sub-b", "sub-c"} {
		_, err := f.db.Repository().Events.GetEventBySourceRef(context.Background(), events.GetEventBySourceRefParams{
			Kind:      string(model.EventKindSubscriptionRenewal),
			SourceRef: model.RenewalSourceRef(id, periodEnd),
		})
		require.NoError(t, err, id)
	}
}

func TestProcessExpired(t *testing.T) {
	f := newFixture(t)
	asOf := time.Now().UTC().Truncate(time.Second)
	f.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *model.Notification) error {
			assert.Equal(t, model.NotificationSubscriptionExpired, n.Type)
			assert.Equal(t, "org-1", n.RecipientID)
			return nil
		}).
		Times(1)

	f.db.PutSubscription(subscriptions.Subscription{
		ID:               "sub-ended",
		PartyID:          "org-1",
		Tier:             "basic",
		Status:           "active",
		Price:            2_490_000,
		Currency:         "VND",
		CurrentPeriodEnd: pgtype.Timestamptz{Time: asOf.Add(-time.Minute), Valid: true},
	})

	results := f.run(t, model.TaskProcessExpired, asOf)
	require.Len(t, results, 1)
	assert.Equal(t, model.ItemStatusUpdated, results[0].Status)

	sub, err := f.db.Repository().Subscriptions.GetSubscription(context.Background(), "sub-ended")
	require.NoError(t, err)
	assert.Equal(t, string(model.SubscriptionStatusExpired), sub.Status)

	assert.Empty(t, f.run(t, model.TaskProcessExpired, asOf))

	stale, err := f.tasks.ProcessItem(context.Background(), model.TaskProcessExpired, "sub-ended", asOf)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusSkipped, stale.Status)

	missing, err := f.tasks.ProcessItem(context.Background(), model.TaskProcessExpired, "sub-missing", asOf)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusSkipped, missing.Status)
}

func TestSendWarnings(t *testing.T) {
	f := newFixture(t)
	asOf := time.Now().UTC().Truncate(time.Second)
	f.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *model.Notification) error {
			assert.Equal(t, model.NotificationSubscriptionExpiring, n.Type)
			assert.Equal(t, "3", n.Data["days_remaining"])
			return nil
		}).
		Times(1)

	f.db.PutSubscription(subscriptions.Subscription{
		ID:               "sub-soon",
		PartyID:          "org-1",
		Tier:             "basic",
		Status:           "active",
		Price:            2_490_000,
		Currency:         "VND",
		CurrentPeriodEnd: pgtype.Timestamptz{Time: asOf.AddDate(0, 0, 3), Valid: true},
	})
	f.db.PutSubscription(subscriptions.Subscription{
		ID:               "sub-far",
		PartyID:          "org-2",
		Tier:             "basic",
		Status:           "active",
		Price:            2_490_000,
		Currency:         "VND",
		CurrentPeriodEnd: pgtype.Timestamptz{Time: asOf.AddDate(0, 1, 0), Valid: true},
	})

	results := f.run(t, model.TaskSendWarnings, asOf)
	require.Len(t, results, 1)
	assert.Equal(t, "sub-soon", results[0].ItemID)
	assert.Equal(t, model.ItemStatusUpdated, results[0].Status)

	// Each period is warned once.
	assert.Empty(t, f.run(t, model.TaskSendWarnings, asOf))
}

func TestUnknownTask(t *testing.T) {
	f := newFixture(t)
	_, err := f.tasks.SelectItems(context.Background(), "rebuild-everything", time.Now())
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.tasks.ProcessItem(context.Background(), "rebuild-everything", "1", time.Now())
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestSelectItems_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.db.FailNext("ListPendingEventIDs", assert.AnError)
	_, err := f.tasks.SelectItems(context.Background(), model.TaskGeneratePayPerHire, time.Now())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.True(t, domain.IsTransient(err))
}
