package invoices

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Invoice struct {
	ID              int64
	Number          string
	InvoiceType     string
	EventID         int64
	PartyID         string
	Currency        string
	Subtotal        int64
	Total           int64
	Status          string
	ScheduleVersion string
	IssuedAt        pgtype.Timestamptz
	DueAt           pgtype.Timestamptz
	PaidAt          pgtype.Timestamptz
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type InvoiceLineItem struct {
	ID          int64
	InvoiceID   int64
	Position    int32
	Description string
	Quantity    int64
	UnitPrice   int64
	Amount      int64
	Provenance  []byte
	CreatedAt   pgtype.Timestamptz
}
