package billing

import (
	"context"

	"encore.dev/rlog"

	"trm.app/billing/model"
)

type ListTransactionsResponse struct {
	Transactions []model.BillableEvent `json:"transactions"`
	TotalCount   int64                 `json:"total_count"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
	Skip         int                   `json:"skip"`
	Page         int                   `json:"page"`
}

// ListTransactions returns the party's billable events, newest first.
//
//encore:api public path=/v1/parties/:partyID/transactions method=GET
func (s *Service) ListTransactions(ctx context.Context, partyID string, req *PageRequest) (*ListTransactionsResponse, error) {
	filter, err := req.filter(partyID)
	if err != nil {
		return nil, err
	}

	events, totalCount, err := s.events.ListEvents(ctx, filter)
	if err != nil {
		rlog.Error("failed to list transactions", "party_id", partyID, "error", err)
		return nil, err
	}

	response := &ListTransactionsResponse{
		Transactions: make([]model.BillableEvent, len(events)),
		TotalCount:   totalCount,
		Limit:        req.Limit,
		Offset:       req.Offset,
		Skip:         req.Skip,
		Page:         req.Page,
	}
	for i, event := range events {
		response.Transactions[i] = *event
	}
	return response, nil
}
