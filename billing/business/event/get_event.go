package event

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"trm.app/billing/domain"
	"trm.app/billing/model"
)

func (b *business) GetEvent(ctx context.Context, id int64) (*model.BillableEvent, error) {
	if id <= 0 {
		return nil, domain.Validation("invalid billable event ID")
	}
	row, err := b.eventRepo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.EventNotFound()
		}
		return nil, domain.StoreUnavailable("failed to get billable event", err)
	}
	return domain.EventFromRow(row), nil
}
