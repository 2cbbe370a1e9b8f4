package invoice

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"trm.app/billing/domain"
	"trm.app/billing/model"
)

func (b *business) GetInvoice(ctx context.Context, id int64) (*model.Invoice, error) {
	if id <= 0 {
		return nil, domain.Validation("invalid invoice ID")
	}
	row, err := b.repo.Invoices.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.InvoiceNotFound()
		}
		return nil, domain.StoreUnavailable("failed to get invoice", err)
	}
	items, err := b.repo.Invoices.ListLineItems(ctx, id)
	if err != nil {
		return nil, domain.StoreUnavailable("failed to get invoice line items", err)
	}
	return domain.InvoiceFromRow(row, items), nil
}
