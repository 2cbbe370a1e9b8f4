package billing

import (
	"context"

	"encore.dev/rlog"

	"trm.app/billing/model"
)

type ListInvoicesResponse struct {
	Invoices   []model.Invoice `json:"invoices"`
	TotalCount int64           `json:"total_count"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
	Skip       int             `json:"skip"`
	Page       int             `json:"page"`
}

//encore:api public path=/v1/parties/:partyID/invoices method=GET
func (s *Service) ListInvoices(ctx context.Context, partyID string, req *PageRequest) (*ListInvoicesResponse, error) {
	filter, err := req.filter(partyID)
	if err != nil {
		return nil, err
	}

	invoices, totalCount, err := s.invoices.ListInvoices(ctx, filter)
	if err != nil {
		rlog.Error("failed to list invoices", "party_id", partyID, "error", err)
		return nil, err
	}

	response := &ListInvoicesResponse{
		Invoices:   make([]model.Invoice, len(invoices)),
		TotalCount: totalCount,
		Limit:      req.Limit,
		Offset:     req.Offset,
		Skip:       req.Skip,
		Page:       req.Page,
	}
	for i, invoice := range invoices {
		response.Invoices[i] = *invoice
	}
	return response, nil
}
