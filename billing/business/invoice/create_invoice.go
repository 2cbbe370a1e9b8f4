package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"encore.dev/rlog"

	"trm.app/billing/business/notify"
	"trm.app/billing/domain"
	"trm.app/billing/model"
	"trm.app/billing/repository"
	"trm.app/billing/repository/events"
	"trm.app/billing/repository/invoices"
)

// CreateInvoice issues the invoice for a pending billable event. Calling it
// again for the same event returns the invoice issued the first time together
// with an AlreadyInvoiced error.
func (b *business) CreateInvoice(ctx context.Context, eventID int64) (*model.Invoice, error) {
	if eventID <= 0 {
		return nil, domain.Validation("invalid billable event ID")
	}

	row, err := b.repo.Events.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.EventNotFound()
		}
		return nil, domain.StoreUnavailable("failed to get billable event", err)
	}
	invoiceType := model.InvoiceTypeFor(model.EventKind(row.Kind))

	// Fast path for re-runs. The unique constraint on (event, type) is what
	// actually guarantees a single invoice.
	existing, err := findByEvent(ctx, b.repo, eventID, invoiceType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, domain.AlreadyInvoiced()
	}
	if model.EventState(row.State) != model.EventStatePending {
		return nil, domain.InvalidState(fmt.Sprintf("billable event is %s, only pending events can be invoiced", row.State))
	}

	var resolution *model.RateResolution
	if model.EventKind(row.Kind) == model.EventKindHire {
		resolution, err = b.rates.ResolveRate(ctx, b.schedule, row.PartyID)
		if err != nil {
			return nil, err
		}
	}

	issuedAt := b.now().UTC()
	var created *model.Invoice
	err = b.ledger.WithEventLock(ctx, eventID, func(ctx context.Context, repo *repository.Repository, locked events.BillableEvent) error {
		existing, err := findByEvent(ctx, repo, eventID, invoiceType)
		if err != nil {
			return err
		}
		if existing != nil {
			created = existing
			return domain.AlreadyInvoiced()
		}
		if model.EventState(locked.State) != model.EventStatePending {
			return domain.InvalidState(fmt.Sprintf("billable event is %s, only pending events can be invoiced", locked.State))
		}

		inv, err := b.builder.Build(ctx, querySequencer{q: repo.Invoices}, domain.EventFromRow(locked), resolution, issuedAt)
		if err != nil {
			return err
		}
		created, err = insertInvoice(ctx, repo, inv)
		if err != nil {
			return err
		}
		return domain.TransitionEvent(ctx, repo, locked, model.EventStateInvoiced)
	})
	if err != nil {
		if domain.IsAlreadyInvoiced(err) {
			return created, err
		}
		if domain.IsUniqueViolation(err) {
			// Lost the race to a concurrent writer that committed first.
			existing, findErr := findByEvent(ctx, b.repo, eventID, invoiceType)
			if findErr != nil {
				return nil, findErr
			}
			if existing != nil {
				return existing, domain.AlreadyInvoiced()
			}
			return nil, domain.StoreUnavailable("invoice insert conflicted", err)
		}
		rlog.Error("failed to create invoice", "event_id", eventID, "error", err)
		return nil, err
	}

	rlog.Info("invoice created",
		"invoice_id", created.ID,
		"invoice_number", created.Number,
		"event_id", eventID,
		"total", created.Total,
	)
	b.publish(ctx, notify.InvoiceCreated(created))
	return created, nil
}

// findByEvent returns nil without error when the event has no invoice of the type.
func findByEvent(ctx context.Context, repo *repository.Repository, eventID int64, invoiceType model.InvoiceType) (*model.Invoice, error) {
	row, err := repo.Invoices.GetInvoiceByEvent(ctx, invoices.GetInvoiceByEventParams{
		EventID:     eventID,
		InvoiceType: string(invoiceType),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.StoreUnavailable("failed to look up invoice", err)
	}
	items, err := repo.Invoices.ListLineItems(ctx, row.ID)
	if err != nil {
		return nil, domain.StoreUnavailable("failed to get invoice line items", err)
	}
	return domain.InvoiceFromRow(row, items), nil
}

// insertInvoice writes the invoice and its line items. A unique violation is
// returned unwrapped so the caller can tell a lost race from a store failure.
func insertInvoice(ctx context.Context, repo *repository.Repository, inv *model.Invoice) (*model.Invoice, error) {
	row, err := repo.Invoices.CreateInvoice(ctx, invoices.CreateInvoiceParams{
		Number:          inv.Number,
		InvoiceType:     string(inv.Type),
		EventID:         inv.EventID,
		PartyID:         inv.PartyID,
		Currency:        inv.Currency,
		Subtotal:        inv.Subtotal,
		Total:           inv.Total,
		ScheduleVersion: inv.ScheduleVersion,
		IssuedAt:        domain.Timestamptz(inv.IssuedAt),
		DueAt:           domain.Timestamptz(inv.DueAt),
	})
	if err != nil {
		if domain.IsUniqueViolation(err) {
			return nil, err
		}
		return nil, domain.StoreUnavailable("failed to create invoice", err)
	}

	items := make([]invoices.InvoiceLineItem, 0, len(inv.LineItems))
	for i, li := range inv.LineItems {
		provenance, err := json.Marshal(li.Provenance)
		if err != nil {
			return nil, fmt.Errorf("encode provenance: %w", err)
		}
		item, err := repo.Invoices.CreateLineItem(ctx, invoices.CreateLineItemParams{
			InvoiceID:   row.ID,
			Position:    int32(i + 1),
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
			Provenance:  provenance,
		})
		if err != nil {
			return nil, domain.StoreUnavailable("failed to create invoice line item", err)
		}
		items = append(items, item)
	}
	return domain.InvoiceFromRow(row, items), nil
}
