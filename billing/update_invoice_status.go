package billing

import (
	"context"

	"encore.dev/rlog"

	"trm.app/billing/model"
)

type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid failed cancelled"`
}

// UpdateInvoiceStatus records the payment outcome reported by the payment
// provider integration.
//
//encore:api private path=/v1/invoices/:id/status method=POST
func (s *Service) UpdateInvoiceStatus(ctx context.Context, id int64, req *UpdateInvoiceStatusRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoices.UpdateInvoiceStatus(ctx, id, model.InvoiceStatus(req.Status))
	if err != nil {
		rlog.Error("failed to update invoice status", "invoice_id", id, "status", req.Status, "error", err)
		return nil, err
	}
	return &InvoiceResponse{Invoice: *invoice}, nil
}

func (r *UpdateInvoiceStatusRequest) Validate() error {
	return validateStruct(r)
}
