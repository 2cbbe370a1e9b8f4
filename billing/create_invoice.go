package billing

import (
	"context"

	"encore.dev/rlog"

	"trm.app/billing/domain"
	"trm.app/billing/model"
)

type InvoiceResponse struct {
	Invoice model.Invoice `json:"invoice"`
	// AlreadyInvoiced is set when the event had been invoiced before and the
	// existing invoice is returned.
	AlreadyInvoiced bool `json:"already_invoiced,omitempty"`
}

// CreateInvoice issues the invoice for a pending billable event. It is safe to
// call again for the same event.
//
//encore:api private path=/v1/billable-events/:id/invoice method=POST
func (s *Service) CreateInvoice(ctx context.Context, id int64) (*InvoiceResponse, error) {
	invoice, err := s.invoices.CreateInvoice(ctx, id)
	if err != nil {
		if domain.IsAlreadyInvoiced(err) && invoice != nil {
			rlog.Info("billable event already invoiced", "event_id", id, "invoice_number", invoice.Number)
			return &InvoiceResponse{Invoice: *invoice, AlreadyInvoiced: true}, nil
		}
		rlog.Error("failed to create invoice", "event_id", id, "error", err)
		return nil, err
	}
	return &InvoiceResponse{Invoice: *invoice}, nil
}
