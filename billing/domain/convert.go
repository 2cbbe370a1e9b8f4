package domain

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"

	"encore.dev/rlog"

	"trm.app/billing/model"
	"trm.app/billing/repository/events"
	"trm.app/billing/repository/invoices"
	"trm.app/billing/repository/subscriptions"
)

// EventFromRow converts a database event to the domain model
func EventFromRow(row events.BillableEvent) *model.BillableEvent {
	return &model.BillableEvent{
		ID:          row.ID,
		Kind:        model.EventKind(row.Kind),
		PartyID:     row.PartyID,
		Amount:      row.Amount,
		Currency:    row.Currency,
		SourceRef:   row.SourceRef,
		Description: row.Description.String,
		OccurredAt:  row.OccurredAt.Time,
		State:       model.EventState(row.State),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

// InvoiceFromRow converts a database invoice and its line items to the domain model
func InvoiceFromRow(row invoices.Invoice, items []invoices.InvoiceLineItem) *model.Invoice {
	inv := &model.Invoice{
		ID:              row.ID,
		Number:          row.Number,
		Type:            model.InvoiceType(row.InvoiceType),
		EventID:         row.EventID,
		PartyID:         row.PartyID,
		Currency:        row.Currency,
		Subtotal:        row.Subtotal,
		Total:           row.Total,
		Status:          model.InvoiceStatus(row.Status),
		ScheduleVersion: row.ScheduleVersion,
		IssuedAt:        row.IssuedAt.Time,
		DueAt:           row.DueAt.Time,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
		LineItems: lo.Map(items, func(item invoices.InvoiceLineItem, _ int) model.LineItem {
			return LineItemFromRow(item)
		}),
	}
	if row.PaidAt.Valid {
		inv.PaidAt = &row.PaidAt.Time
	}
	return inv
}

func LineItemFromRow(row invoices.InvoiceLineItem) model.LineItem {
	item := model.LineItem{
		ID:          row.ID,
		Description: row.Description,
		Quantity:    row.Quantity,
		UnitPrice:   row.UnitPrice,
		Amount:      row.Amount,
	}
	if len(row.Provenance) > 0 {
		var p model.Provenance
		if err := json.Unmarshal(row.Provenance, &p); err != nil {
			rlog.Error("failed to decode line item provenance", "line_item_id", row.ID, "error", err)
		} else {
			item.Provenance = &p
		}
	}
	return item
}

func SubscriptionFromRow(row subscriptions.Subscription) *model.Subscription {
	return &model.Subscription{
		ID:               row.ID,
		PartyID:          row.PartyID,
		Tier:             row.Tier,
		Status:           model.SubscriptionStatus(row.Status),
		Price:            row.Price,
		Currency:         row.Currency,
		CurrentPeriodEnd: row.CurrentPeriodEnd.Time,
		AutoRenew:        row.AutoRenew,
	}
}

func Timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// OptionalTimestamptz maps a nil time to SQL NULL.
func OptionalTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func OptionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
