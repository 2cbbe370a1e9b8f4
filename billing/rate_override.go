package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"trm.app/billing/model"
)

type SetRateOverrideRequest struct {
	// RatePercent is a decimal string with at most two decimal places, e.g. "12.5".
	RatePercent string `json:"rate_percent" validate:"required,numeric"`
}

type RateOverrideResponse struct {
	Override model.RateOverride `json:"override"`
}

type RateResponse struct {
	Rate model.RateResolution `json:"rate"`
}

// SetRateOverride pins a negotiated percentage for a party. It takes
// precedence over the party's subscription tier.
//
//encore:api private path=/v1/parties/:partyID/rate-override method=PUT
func (s *Service) SetRateOverride(ctx context.Context, partyID string, req *SetRateOverrideRequest) (*RateOverrideResponse, error) {
	rate, err := decimal.NewFromString(req.RatePercent)
	if err != nil {
		return nil, &errs.Error{Code: errs.InvalidArgument, Message: "rate_percent must be a decimal number"}
	}
	override, err := s.rates.SetOverride(ctx, partyID, rate)
	if err != nil {
		rlog.Error("failed to set rate override", "party_id", partyID, "rate_percent", req.RatePercent, "error", err)
		return nil, err
	}
	return &RateOverrideResponse{Override: *override}, nil
}

//encore:api private path=/v1/parties/:partyID/rate-override method=DELETE
func (s *Service) ClearRateOverride(ctx context.Context, partyID string) error {
	if err := s.rates.ClearOverride(ctx, partyID); err != nil {
		rlog.Error("failed to clear rate override", "party_id", partyID, "error", err)
		return err
	}
	return nil
}

// GetRate returns the rate that currently applies to the party.
//
//encore:api public path=/v1/parties/:partyID/rate method=GET
func (s *Service) GetRate(ctx context.Context, partyID string) (*RateResponse, error) {
	resolution, err := s.rates.ResolveRate(ctx, s.schedule, partyID)
	if err != nil {
		rlog.Error("failed to resolve rate", "party_id", partyID, "error", err)
		return nil, err
	}
	return &RateResponse{Rate: *resolution}, nil
}

func (r *SetRateOverrideRequest) Validate() error {
	return validateStruct(r)
}
