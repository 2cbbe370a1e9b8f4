package billing

import (
	"context"

	"encore.dev/rlog"
)

//encore:api public path=/v1/invoices/:id method=GET
func (s *Service) GetInvoice(ctx context.Context, id int64) (*InvoiceResponse, error) {
	invoice, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		rlog.Error("failed to get invoice", "invoice_id", id, "error", err)
		return nil, err
	}
	return &InvoiceResponse{Invoice: *invoice}, nil
}
