package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"encore.dev/rlog"

	"trm.app/billing/domain"
	"trm.app/billing/model"
	"trm.app/billing/repository"
	"trm.app/billing/repository/invoices"
)

// UpdateInvoiceStatus records the payment outcome of a pending invoice and
// moves its billable event along in the same transaction. Repeating the
// current status is a no-op.
func (b *business) UpdateInvoiceStatus(ctx context.Context, id int64, status model.InvoiceStatus) (*model.Invoice, error) {
	if id <= 0 {
		return nil, domain.Validation("invalid invoice ID")
	}
	switch status {
	case model.InvoiceStatusPaid, model.InvoiceStatusFailed, model.InvoiceStatusCancelled:
	default:
		return nil, domain.Validation(fmt.Sprintf("invalid invoice status %q", status))
	}

	err := b.ledger.WithInvoiceLock(ctx, id, func(ctx context.Context, repo *repository.Repository, current invoices.Invoice) error {
		if model.InvoiceStatus(current.Status) == status {
			return nil
		}

		var paidAt pgtype.Timestamptz
		if status == model.InvoiceStatusPaid {
			paidAt = domain.Timestamptz(b.now().UTC())
		}
		if err := domain.TransitionInvoice(ctx, repo, current, status, paidAt); err != nil {
			return err
		}

		eventState, cascade := domain.EventStateForInvoice(status)
		if !cascade {
			return nil
		}
		event, err := repo.Events.GetEventForUpdate(ctx, current.EventID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.EventNotFound()
			}
			return domain.StoreUnavailable("failed to lock billable event", err)
		}
		return domain.TransitionEvent(ctx, repo, event, eventState)
	})
	if err != nil {
		rlog.Error("failed to update invoice status", "invoice_id", id, "status", status, "error", err)
		return nil, err
	}

	return b.GetInvoice(ctx, id)
}
