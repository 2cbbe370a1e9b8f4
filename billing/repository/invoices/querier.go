package invoices

import (
	"context"
)

type Querier interface {
	CountInvoicesByParty(ctx context.Context, arg CountInvoicesByPartyParams) (int64, error)
	CreateInvoice(ctx context.Context, arg CreateInvoiceParams) (Invoice, error)
	CreateLineItem(ctx context.Context, arg CreateLineItemParams) (InvoiceLineItem, error)
	GetInvoice(ctx context.Context, id int64) (Invoice, error)
	GetInvoiceByEvent(ctx context.Context, arg GetInvoiceByEventParams) (Invoice, error)
	GetInvoiceForUpdate(ctx context.Context, id int64) (Invoice, error)
	ListInvoicesByParty(ctx context.Context, arg ListInvoicesByPartyParams) ([]Invoice, error)
	ListLineItems(ctx context.Context, invoiceID int64) ([]InvoiceLineItem, error)
	ListOverdueInvoices(ctx context.Context, arg ListOverdueInvoicesParams) ([]Invoice, error)
	// NextInvoiceSequence increments and returns the counter for the invoice
	// type and month. The counter row stays locked until the transaction ends.
	NextInvoiceSequence(ctx context.Context, arg NextInvoiceSequenceParams) (int32, error)
	UpdateInvoiceStatus(ctx context.Context, arg UpdateInvoiceStatusParams) (int64, error)
}

var _ Querier = (*Queries)(nil)
