package billing

import (
	"context"

	"encore.dev/rlog"

	"trm.app/billing/model"
)

type EstimateFeeRequest struct {
	BaseAmount int64  `query:"base_amount" validate:"gt=0"`
	Currency   string `query:"currency" validate:"omitempty,len=3,alpha"`
}

type EstimateFeeResponse struct {
	Estimate model.FeeEstimate `json:"estimate"`
}

// EstimateFee prices a hypothetical hire for the party.
//
//encore:api public path=/v1/parties/:partyID/fee-estimate method=GET
func (s *Service) EstimateFee(ctx context.Context, partyID string, req *EstimateFeeRequest) (*EstimateFeeResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = cfg.Currency
	}
	estimate, err := s.invoices.EstimateFee(ctx, partyID, req.BaseAmount, currency)
	if err != nil {
		rlog.Error("failed to estimate fee", "party_id", partyID, "base_amount", req.BaseAmount, "error", err)
		return nil, err
	}
	return &EstimateFeeResponse{Estimate: *estimate}, nil
}

func (r *EstimateFeeRequest) Validate() error {
	return validateStruct(r)
}
