package billing

import (
	"context"
	"time"

	"encore.dev/rlog"

	"trm.app/billing/model"
)

type RecordEventRequest struct {
	IdempotencyKey string `header:"X-Idempotency-Key" json:"-"`

	Kind        string    `json:"kind" validate:"required,oneof=hire subscription_renewal dunning"`
	PartyID     string    `json:"party_id" validate:"required,max=128"`
	Amount      int64     `json:"amount" validate:"gt=0"`
	Currency    string    `json:"currency" validate:"required,len=3,alpha"`
	SourceRef   string    `json:"source_ref" validate:"required,max=255"`
	Description string    `json:"description" validate:"max=500"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type EventResponse struct {
	Event model.BillableEvent `json:"event"`
	// Created is false when the event had been recorded before.
	Created bool `json:"created"`
}

// RecordEvent stores a billable event reported by an upstream service.
//
//encore:api private path=/v1/billable-events method=POST tag:idempotency
func (s *Service) RecordEvent(ctx context.Context, req *RecordEventRequest) (*EventResponse, error) {
	stored, created, err := s.events.RecordEvent(ctx, &model.BillableEvent{
		Kind:        model.EventKind(req.Kind),
		PartyID:     req.PartyID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		SourceRef:   req.SourceRef,
		Description: req.Description,
		OccurredAt:  req.OccurredAt,
	})
	if err != nil {
		rlog.Error("failed to record billable event", "kind", req.Kind, "source_ref", req.SourceRef, "error", err)
		return nil, err
	}
	return &EventResponse{Event: *stored, Created: created}, nil
}

func (r *RecordEventRequest) Validate() error {
	return validateStruct(r)
}
