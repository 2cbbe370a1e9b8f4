package invoices

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const invoiceColumns = `id, number, invoice_type, event_id, party_id, currency, subtotal, total, status, schedule_version, issued_at, due_at, paid_at, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (Invoice, error) {
	var i Invoice
	err := row.Scan(
		&i.ID,
		&i.Number,
		&i.InvoiceType,
		&i.EventID,
		&i.PartyID,
		&i.Currency,
		&i.Subtotal,
		&i.Total,
		&i.Status,
		&i.ScheduleVersion,
		&i.IssuedAt,
		&i.DueAt,
		&i.PaidAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectInvoices(rows pgx.Rows, err error) ([]Invoice, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Invoice
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const nextInvoiceSequence = `-- name: NextInvoiceSequence :one
INSERT INTO invoice_sequences (invoice_type, year_month, last_value)
VALUES ($1, $2, 1)
ON CONFLICT (invoice_type, year_month)
DO UPDATE SET last_value = invoice_sequences.last_value + 1
RETURNING last_value`

type NextInvoiceSequenceParams struct {
	InvoiceType string
	YearMonth   string
}

func (q *Queries) NextInvoiceSequence(ctx context.Context, arg NextInvoiceSequenceParams) (int32, error) {
	var lastValue int32
	err := q.db.QueryRow(ctx, nextInvoiceSequence, arg.InvoiceType, arg.YearMonth).Scan(&lastValue)
	return lastValue, err
}

const createInvoice = `-- name: CreateInvoice :one
INSERT INTO invoices (number, invoice_type, event_id, party_id, currency, subtotal, total, status, schedule_version, issued_at, due_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', $8, $9, $10)
RETURNING ` + invoiceColumns

type CreateInvoiceParams struct {
	Number          string
	InvoiceType     string
	EventID         int64
	PartyID         string
	Currency        string
	Subtotal        int64
	Total           int64
	ScheduleVersion string
	IssuedAt        pgtype.Timestamptz
	DueAt           pgtype.Timestamptz
}

func (q *Queries) CreateInvoice(ctx context.Context, arg CreateInvoiceParams) (Invoice, error) {
	row := q.db.QueryRow(ctx, createInvoice,
		arg.Number,
		arg.InvoiceType,
		arg.EventID,
		arg.PartyID,
		arg.Currency,
		arg.Subtotal,
		arg.Total,
		arg.ScheduleVersion,
		arg.IssuedAt,
		arg.DueAt,
	)
	return scanInvoice(row)
}

const createLineItem = `-- name: CreateLineItem :one
INSERT INTO invoice_line_items (invoice_id, position, description, quantity, unit_price, amount, provenance)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, invoice_id, position, description, quantity, unit_price, amount, provenance, created_at`

type CreateLineItemParams struct {
	InvoiceID   int64
	Position    int32
	Description string
	Quantity    int64
	UnitPrice   int64
	Amount      int64
	Provenance  []byte
}

func (q *Queries) CreateLineItem(ctx context.Context, arg CreateLineItemParams) (InvoiceLineItem, error) {
	row := q.db.QueryRow(ctx, createLineItem,
		arg.InvoiceID,
		arg.Position,
		arg.Description,
		arg.Quantity,
		arg.UnitPrice,
		arg.Amount,
		arg.Provenance,
	)
	var i InvoiceLineItem
	err := row.Scan(
		&i.ID,
		&i.InvoiceID,
		&i.Position,
		&i.Description,
		&i.Quantity,
		&i.UnitPrice,
		&i.Amount,
		&i.Provenance,
		&i.CreatedAt,
	)
	return i, err
}

const getInvoice = `-- name: GetInvoice :one
SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

func (q *Queries) GetInvoice(ctx context.Context, id int64) (Invoice, error) {
	return scanInvoice(q.db.QueryRow(ctx, getInvoice, id))
}

const getInvoiceForUpdate = `-- name: GetInvoiceForUpdate :one
SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`

func (q *Queries) GetInvoiceForUpdate(ctx context.Context, id int64) (Invoice, error) {
	return scanInvoice(q.db.QueryRow(ctx, getInvoiceForUpdate, id))
}

const getInvoiceByEvent = `-- name: GetInvoiceByEvent :one
SELECT ` + invoiceColumns + ` FROM invoices WHERE event_id = $1 AND invoice_type = $2`

type GetInvoiceByEventParams struct {
	EventID     int64
	InvoiceType string
}

func (q *Queries) GetInvoiceByEvent(ctx context.Context, arg GetInvoiceByEventParams) (Invoice, error) {
	return scanInvoice(q.db.QueryRow(ctx, getInvoiceByEvent, arg.EventID, arg.InvoiceType))
}

const listLineItems = `-- name: ListLineItems :many
SELECT id, invoice_id, position, description, quantity, unit_price, amount, provenance, created_at
FROM invoice_line_items
WHERE invoice_id = $1
ORDER BY position`

func (q *Queries) ListLineItems(ctx context.Context, invoiceID int64) ([]InvoiceLineItem, error) {
	rows, err := q.db.Query(ctx, listLineItems, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []InvoiceLineItem
	for rows.Next() {
		var i InvoiceLineItem
		if err := rows.Scan(
			&i.ID,
			&i.InvoiceID,
			&i.Position,
			&i.Description,
			&i.Quantity,
			&i.UnitPrice,
			&i.Amount,
			&i.Provenance,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listInvoicesByParty = `-- name: ListInvoicesByParty :many
SELECT ` + invoiceColumns + ` FROM invoices
WHERE party_id = $1
  AND ($2::text IS NULL OR status = $2)
  AND ($3::timestamptz IS NULL OR issued_at >= $3)
  AND ($4::timestamptz IS NULL OR issued_at < $4)
ORDER BY issued_at DESC, id DESC
LIMIT $5 OFFSET $6`

type ListInvoicesByPartyParams struct {
	PartyID string
	Status  pgtype.Text
	From    pgtype.Timestamptz
	To      pgtype.Timestamptz
	Limit   int32
	Offset  int32
}

func (q *Queries) ListInvoicesByParty(ctx context.Context, arg ListInvoicesByPartyParams) ([]Invoice, error) {
	return collectInvoices(q.db.Query(ctx, listInvoicesByParty,
		arg.PartyID,
		arg.Status,
		arg.From,
		arg.To,
		arg.Limit,
		arg.Offset,
	))
}

const countInvoicesByParty = `-- name: CountInvoicesByParty :one
SELECT COUNT(*) FROM invoices
WHERE party_id = $1
  AND ($2::text IS NULL OR status = $2)
  AND ($3::timestamptz IS NULL OR issued_at >= $3)
  AND ($4::timestamptz IS NULL OR issued_at < $4)`

type CountInvoicesByPartyParams struct {
	PartyID string
	Status  pgtype.Text
	From    pgtype.Timestamptz
	To      pgtype.Timestamptz
}

func (q *Queries) CountInvoicesByParty(ctx context.Context, arg CountInvoicesByPartyParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countInvoicesByParty, arg.PartyID, arg.Status, arg.From, arg.To).Scan(&count)
	return count, err
}

const listOverdueInvoices = `-- name: ListOverdueInvoices :many
SELECT ` + invoiceColumns + ` FROM invoices
WHERE status = 'pending' AND invoice_type <> 'dunning' AND due_at < $1
  AND NOT EXISTS (
    SELECT 1 FROM billable_events e
    WHERE e.kind = 'dunning' AND e.source_ref = invoices.number
  )
ORDER BY id
LIMIT $2`

type ListOverdueInvoicesParams struct {
	DueBefore pgtype.Timestamptz
	Limit     int32
}

func (q *Queries) ListOverdueInvoices(ctx context.Context, arg ListOverdueInvoicesParams) ([]Invoice, error) {
	return collectInvoices(q.db.Query(ctx, listOverdueInvoices, arg.DueBefore, arg.Limit))
}

const updateInvoiceStatus = `-- name: UpdateInvoiceStatus :execrows
UPDATE invoices
SET status = $3, paid_at = $4, updated_at = NOW()
WHERE id = $1 AND status = $2`

type UpdateInvoiceStatusParams struct {
	ID         int64
	FromStatus string
	ToStatus   string
	PaidAt     pgtype.Timestamptz
}

func (q *Queries) UpdateInvoiceStatus(ctx context.Context, arg UpdateInvoiceStatusParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateInvoiceStatus, arg.ID, arg.FromStatus, arg.ToStatus, arg.PaidAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
