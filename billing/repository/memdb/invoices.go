package memdb

import (
	"cmp"
	"context"
	"slices"

	"github.com/jackc/pgx/v5"

	"trm.app/billing/repository/invoices"
)

type invoiceStore struct {
	*conn
}

var _ invoices.Querier = (*invoiceStore)(nil)

func (s *invoiceStore) NextInvoiceSequence(ctx context.Context, arg invoices.NextInvoiceSequenceParams) (int32, error) {
	if err := s.begin(ctx, "NextInvoiceSequence"); err != nil {
		return 0, err
	}
	st, done := s.write()
	defer done()
	key := sequenceKey{invoiceType: arg.InvoiceType, yearMonth: arg.YearMonth}
	st.sequences[key]++
	return st.sequences[key], nil
}

func (s *invoiceStore) CreateInvoice(ctx context.Context, arg invoices.CreateInvoiceParams) (invoices.Invoice, error) {
	if err := s.begin(ctx, "CreateInvoice"); err != nil {
		return invoices.Invoice{}, err
	}
	st, done := s.write()
	defer done()

	if _, ok := st.events[arg.EventID]; !ok {
		return invoices.Invoice{}, foreignKeyViolation("invoices_event_id_fkey")
	}
	key := invoiceKey{eventID: arg.EventID, invoiceType: arg.InvoiceType}
	if _, exists := st.invoiceByEvent[key]; exists {
		return invoices.Invoice{}, uniqueViolation("invoices_event_id_invoice_type_key")
	}
	if _, exists := st.invoiceByNumber[arg.Number]; exists {
		return invoices.Invoice{}, uniqueViolation("invoices_number_key")
	}

	st.nextInvoiceID++
	ts := now()
	inv := invoices.Invoice{
		ID:              st.nextInvoiceID,
		Number:          arg.Number,
		InvoiceType:     arg.InvoiceType,
		EventID:         arg.EventID,
		PartyID:         arg.PartyID,
		Currency:        arg.Currency,
		Subtotal:        arg.Subtotal,
		Total:           arg.Total,
		Status:          "pending",
		ScheduleVersion: arg.ScheduleVersion,
		IssuedAt:        arg.IssuedAt,
		DueAt:           arg.DueAt,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	st.invoices[inv.ID] = inv
	st.invoiceByEvent[key] = inv.ID
	st.invoiceByNumber[inv.Number] = inv.ID
	return inv, nil
}

func (s *invoiceStore) CreateLineItem(ctx context.Context, arg invoices.CreateLineItemParams) (invoices.InvoiceLineItem, error) {
	if err := s.begin(ctx, "CreateLineItem"); err != nil {
		return invoices.InvoiceLineItem{}, err
	}
	st, done := s.write()
	defer done()

	if _, ok := st.invoices[arg.InvoiceID]; !ok {
		return invoices.InvoiceLineItem{}, foreignKeyViolation("invoice_line_items_invoice_id_fkey")
	}
	for _, existing := range st.lineItems[arg.InvoiceID] {
		if existing.Position == arg.Position {
			return invoices.InvoiceLineItem{}, uniqueViolation("invoice_line_items_invoice_id_position_key")
		}
	}
	st.nextLineItemID++
	item := invoices.InvoiceLineItem{
		ID:          st.nextLineItemID,
		InvoiceID:   arg.InvoiceID,
		Position:    arg.Position,
		Description: arg.Description,
		Quantity:    arg.Quantity,
		UnitPrice:   arg.UnitPrice,
		Amount:      arg.Amount,
		Provenance:  append([]byte(nil), arg.Provenance...),
		CreatedAt:   now(),
	}
	st.lineItems[arg.InvoiceID] = append(st.lineItems[arg.InvoiceID], item)
	return item, nil
}

func (s *invoiceStore) GetInvoice(ctx context.Context, id int64) (invoices.Invoice, error) {
	if err := s.begin(ctx, "GetInvoice"); err != nil {
		return invoices.Invoice{}, err
	}
	st, done := s.read()
	defer done()
	inv, ok := st.invoices[id]
	if !ok {
		return invoices.Invoice{}, pgx.ErrNoRows
	}
	return inv, nil
}

func (s *invoiceStore) GetInvoiceForUpdate(ctx context.Context, id int64) (invoices.Invoice, error) {
	if err := s.begin(ctx, "GetInvoiceForUpdate"); err != nil {
		return invoices.Invoice{}, err
	}
	st, done := s.read()
	defer done()
	inv, ok := st.invoices[id]
	if !ok {
		return invoices.Invoice{}, pgx.ErrNoRows
	}
	return inv, nil
}

func (s *invoiceStore) GetInvoiceByEvent(ctx context.Context, arg invoices.GetInvoiceByEventParams) (invoices.Invoice, error) {
	if err := s.begin(ctx, "GetInvoiceByEvent"); err != nil {
		return invoices.Invoice{}, err
	}
	st, done := s.read()
	defer done()
	id, ok := st.invoiceByEvent[invoiceKey{eventID: arg.EventID, invoiceType: arg.InvoiceType}]
	if !ok {
		return invoices.Invoice{}, pgx.ErrNoRows
	}
	return st.invoices[id], nil
}

func (s *invoiceStore) ListLineItems(ctx context.Context, invoiceID int64) ([]invoices.InvoiceLineItem, error) {
	if err := s.begin(ctx, "ListLineItems"); err != nil {
		return nil, err
	}
	st, done := s.read()
	defer done()
	items := append([]invoices.InvoiceLineItem(nil), st.lineItems[invoiceID]...)
	slices.SortFunc(items, func(a, b invoices.InvoiceLineItem) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return items, nil
}

func (s *invoiceStore) filterByParty(st *state, arg invoices.CountInvoicesByPartyParams) []invoices.Invoice {
	var items []invoices.Invoice
	for _, inv := range st.invoices {
		if inv.PartyID != arg.PartyID {
			continue
		}
		if arg.Status.Valid && inv.Status != arg.Status.String {
			continue
		}
		if !within(inv.IssuedAt.Time, arg.From, arg.To) {
			continue
		}
		items = append(items, inv)
	}
	slices.SortFunc(items, func(a, b invoices.Invoice) int {
		if c := b.IssuedAt.Time.Compare(a.IssuedAt.Time); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return items
}

func (s *invoiceStore) ListInvoicesByParty(ctx context.Context, arg invoices.ListInvoicesByPartyParams) ([]invoices.Invoice, error) {
	if err := s.begin(ctx, "ListInvoicesByParty"); err != nil {
		return nil, err
	}
	st, done := s.read()
	defer done()
	items := s.filterByParty(st, invoices.CountInvoicesByPartyParams{
		PartyID: arg.PartyID,
		Status:  arg.Status,
		From:    arg.From,
		To:      arg.To,
	})
	return page(items, arg.Limit, arg.Offset), nil
}

func (s *invoiceStore) CountInvoicesByParty(ctx context.Context, arg invoices.CountInvoicesByPartyParams) (int64, error) {
	if err := s.begin(ctx, "CountInvoicesByParty"); err != nil {
		return 0, err
	}
	st, done := s.read()
	defer done()
	return int64(len(s.filterByParty(st, arg))), nil
}

func (s *invoiceStore) ListOverdueInvoices(ctx context.Context, arg invoices.ListOverdueInvoicesParams) ([]invoices.Invoice, error) {
	if err := s.begin(ctx, "ListOverdueInvoices"); err != nil {
		return nil, err
	}
	st, done := s.read()
	defer done()
	var items []invoices.Invoice
	for _, inv := range st.invoices {
		if inv.Status != "pending" || inv.InvoiceType == "dunning" {
			continue
		}
		if !inv.DueAt.Time.Before(arg.DueBefore.Time) {
			continue
		}
		if _, dunned := st.eventKeys[eventKey{kind: "dunning", sourceRef: inv.Number}]; dunned {
			continue
		}
		items = append(items, inv)
	}
	slices.SortFunc(items, func(a, b invoices.Invoice) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return page(items, arg.Limit, 0), nil
}

func (s *invoiceStore) UpdateInvoiceStatus(ctx context.Context, arg invoices.UpdateInvoiceStatusParams) (int64, error) {
	if err := s.begin(ctx, "UpdateInvoiceStatus"); err != nil {
		return 0, err
	}
	st, done := s.write()
	defer done()
	inv, ok := st.invoices[arg.ID]
	if !ok || inv.Status != arg.FromStatus {
		return 0, nil
	}
	inv.Status = arg.ToStatus
	inv.PaidAt = arg.PaidAt
	inv.UpdatedAt = now()
	st.invoices[arg.ID] = inv
	return 1, nil
}
