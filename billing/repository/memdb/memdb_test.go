package memdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trm.app/billing/repository"
	"trm.app/billing/repository/events"
	"trm.app/billing/repository/invoices"
)

func ts(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func insertEvent(t *testing.T, repo *repository.Repository, sourceRef string) events.BillableEvent {
	t.Helper()
	ev, err := repo.Events.InsertEvent(context.Background(), events.InsertEventParams{
		Kind:       "hire",
		PartyID:    "org-1",
		Amount:     1_000_000,
		Currency:   "VND",
		SourceRef:  sourceRef,
		OccurredAt: ts(time.Now()),
	})
	require.NoError(t, err)
	return ev
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func TestInsertEvent_DuplicateSourceRef(t *testing.T) {
	db := New()
	repo := db.Repository()
	first := insertEvent(t, repo, "hire-1")

	_, err := repo.Events.InsertEvent(context.Background(), events.InsertEventParams{
		Kind:      "hire",
		PartyID:   "org-1",
		Amount:    1,
		Currency:  "VND",
		SourceRef: "hire-1",
	})
	require.ErrorIs(t, err, pgx.ErrNoRows)

	// The same source ref under another kind is a different event.
	other, err := repo.Events.InsertEvent(context.Background(), events.InsertEventParams{
		Kind:      "dunning",
		PartyID:   "org-1",
		Amount:    1,
		Currency:  "VND",
		SourceRef: "hire-1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestRunInTx_RollbackDiscardsWrites(t *testing.T) {
	db := New()
	ev := insertEvent(t, db.Repository(), "hire-1")

	err := db.RunInTx(context.Background(), func(ctx context.Context, repo *repository.Repository) error {
		n, err := repo.Events.UpdateEventState(ctx, events.UpdateEventStateParams{ID: ev.ID, FromState: "pending", ToState: "invoiced"})
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		seq, err := repo.Invoices.NextInvoiceSequence(ctx, invoices.NextInvoiceSequenceParams{InvoiceType: "pay_per_hire", YearMonth: "202401"})
		require.NoError(t, err)
		require.Equal(t, int32(1), seq)

		// Uncommitted writes are invisible outside the transaction.
		outside, err := db.Repository().Events.GetEvent(ctx, ev.ID)
		require.NoError(t, err)
		assert.Equal(t, "pending", outside.State)
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	stored, err := db.Repository().Events.GetEvent(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", stored.State)
	assert.Equal(t, int32(0), db.SequenceValue("pay_per_hire", "202401"))
}

func TestRunInTx_CommitPublishesWrites(t *testing.T) {
	db := New()
	ev := insertEvent(t, db.Repository(), "hire-1")

	err := db.RunInTx(context.Background(), func(ctx context.Context, repo *repository.Repository) error {
		_, err := repo.Invoices.CreateInvoice(ctx, invoices.CreateInvoiceParams{
			Number:      "PH-202401-0001",
			InvoiceType: "pay_per_hire",
			EventID:     ev.ID,
			PartyID:     ev.PartyID,
			Currency:    "VND",
			Subtotal:    180_000,
			Total:       180_000,
			IssuedAt:    ts(time.Now()),
			DueAt:       ts(time.Now()),
		})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, db.InvoiceCount())

	inv, err := db.Repository().Invoices.GetInvoiceByEvent(context.Background(), invoices.GetInvoiceByEventParams{EventID: ev.ID, InvoiceType: "pay_per_hire"})
	require.NoError(t, err)
	assert.Equal(t, "pending", inv.Status)
}

func TestCreateInvoice_Constraints(t *testing.T) {
	db := New()
	repo := db.Repository()
	ev := insertEvent(t, repo, "hire-1")
	other := insertEvent(t, repo, "hire-2")

	params := invoices.CreateInvoiceParams{
		Number:      "PH-202401-0001",
		InvoiceType: "pay_per_hire",
		EventID:     ev.ID,
		PartyID:     "org-1",
		Currency:    "VND",
		Total:       1,
	}
	_, err := repo.Invoices.CreateInvoice(context.Background(), params)
	require.NoError(t, err)

	testCases := []struct {
		name         string
		mutate       func(p *invoices.CreateInvoiceParams)
		expectedCode string
	}{
		{name: "same_event_and_type", mutate: func(p *invoices.CreateInvoiceParams) { p.Number = "PH-202401-0002" }, expectedCode: pgerrcode.UniqueViolation},
		{name: "same_number", mutate: func(p *invoices.CreateInvoiceParams) { p.EventID = other.ID }, expectedCode: pgerrcode.UniqueViolation},
		{name: "unknown_event", mutate: func(p *invoices.CreateInvoiceParams) { p.EventID = 999; p.Number = "PH-202401-0003" }, expectedCode: pgerrcode.ForeignKeyViolation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := params
			tc.mutate(&p)
			_, err := repo.Invoices.CreateInvoice(context.Background(), p)
			require.Error(t, err)
			assert.Equal(t, tc.expectedCode, pgCode(err))
		})
	}
}

func TestConditionalUpdates(t *testing.T) {
	db := New()
	repo := db.Repository()
	ev := insertEvent(t, repo, "hire-1")

	n, err := repo.Events.UpdateEventState(context.Background(), events.UpdateEventStateParams{ID: ev.ID, FromState: "invoiced", ToState: "paid"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Events.UpdateEventState(context.Background(), events.UpdateEventStateParams{ID: ev.ID, FromState: "pending", ToState: "invoiced"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFailNext(t *testing.T) {
	db := New()
	repo := db.Repository()
	ev := insertEvent(t, repo, "hire-1")

	db.FailNext("GetEvent", assert.AnError)
	_, err := repo.Events.GetEvent(context.Background(), ev.ID)
	require.ErrorIs(t, err, assert.AnError)

	// The fault fires once.
	_, err = repo.Events.GetEvent(context.Background(), ev.ID)
	require.NoError(t, err)
}

func TestCanceledContext(t *testing.T) {
	db := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.Repository().Events.GetEvent(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
	err = db.RunInTx(ctx, func(ctx context.Context, repo *repository.Repository) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
