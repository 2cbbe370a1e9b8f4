package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"trm.app/billing/model"
	"trm.app/billing/repository"
	"trm.app/billing/repository/events"
	"trm.app/billing/repository/invoices"
)

// Ledger owns the transaction boundary for every billing state change. The
// callbacks receive a repository bound to the open transaction; whatever they
// write commits or rolls back as one unit.
type Ledger struct {
	tx repository.TxManager
}

func NewLedger(tx repository.TxManager) *Ledger {
	return &Ledger{tx: tx}
}

// WithEventLock locks the event row for the duration of fn.
func (l *Ledger) WithEventLock(ctx context.Context, eventID int64, fn func(ctx context.Context, repo *repository.Repository, event events.BillableEvent) error) error {
	return l.run(ctx, "event transition", func(ctx context.Context, repo *repository.Repository) error {
		event, err := repo.Events.GetEventForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return EventNotFound()
			}
			return StoreUnavailable("failed to lock billable event", err)
		}
		return fn(ctx, repo, event)
	})
}

// WithInvoiceLock locks the invoice row for the duration of fn.
func (l *Ledger) WithInvoiceLock(ctx context.Context, invoiceID int64, fn func(ctx context.Context, repo *repository.Repository, invoice invoices.Invoice) error) error {
	return l.run(ctx, "invoice transition", func(ctx context.Context, repo *repository.Repository) error {
		invoice, err := repo.Invoices.GetInvoiceForUpdate(ctx, invoiceID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return InvoiceNotFound()
			}
			return StoreUnavailable("failed to lock invoice", err)
		}
		return fn(ctx, repo, invoice)
	})
}

// TransitionEvent moves a locked event to the target state.
func TransitionEvent(ctx context.Context, repo *repository.Repository, event events.BillableEvent, to model.EventState) error {
	from := model.EventState(event.State)
	if !CanTransitionEvent(from, to) {
		return InvalidState(fmt.Sprintf("billable event cannot move from %s to %s", from, to))
	}
	n, err := repo.Events.UpdateEventState(ctx, events.UpdateEventStateParams{
		ID:        event.ID,
		FromState: string(from),
		ToState:   string(to),
	})
	if err != nil {
		return StoreUnavailable("failed to update billable event state", err)
	}
	if n == 0 {
		return InvalidState(fmt.Sprintf("billable event is no longer %s", from))
	}
	return nil
}

// TransitionInvoice moves a locked invoice to the target status.
func TransitionInvoice(ctx context.Context, repo *repository.Repository, invoice invoices.Invoice, to model.InvoiceStatus, paidAt pgtype.Timestamptz) error {
	from := model.InvoiceStatus(invoice.Status)
	if !CanTransitionInvoice(from, to) {
		return InvalidState(fmt.Sprintf("invoice cannot move from %s to %s", from, to))
	}
	n, err := repo.Invoices.UpdateInvoiceStatus(ctx, invoices.UpdateInvoiceStatusParams{
		ID:         invoice.ID,
		FromStatus: string(from),
		ToStatus:   string(to),
		PaidAt:     paidAt,
	})
	if err != nil {
		return StoreUnavailable("failed to update invoice status", err)
	}
	if n == 0 {
		return InvalidState(fmt.Sprintf("invoice is no longer %s", from))
	}
	return nil
}

func (l *Ledger) run(ctx context.Context, op string, fn func(ctx context.Context, repo *repository.Repository) error) error {
	err := l.tx.RunInTx(ctx, fn)
	if err == nil {
		return nil
	}
	// Errors raised by the callback already carry a code. Anything else came
	// from begin or commit.
	if errs.Code(err) != errs.Unknown || IsUniqueViolation(err) || errors.Is(err, context.Canceled) {
		return err
	}
	rlog.Error("billing transaction failed", "op", op, "error", err)
	return StoreUnavailable(op+" failed", err)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation
}
