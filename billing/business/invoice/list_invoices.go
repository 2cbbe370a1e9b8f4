package invoice

import (
	"context"

	"trm.app/billing/domain"
	"trm.app/billing/model"
	"trm.app/billing/repository/invoices"
)

// ListInvoices returns one page of a party's invoices, newest first, and the
// total number of invoices matching the filter.
func (b *business) ListInvoices(ctx context.Context, filter model.ListFilter) ([]*model.Invoice, int64, error) {
	if filter.PartyID == "" {
		return nil, 0, domain.Validation("party id is required")
	}

	rows, err := b.repo.Invoices.ListInvoicesByParty(ctx, invoices.ListInvoicesByPartyParams{
		PartyID: filter.PartyID,
		Status:  domain.OptionalText(filter.Status),
		From:    domain.OptionalTimestamptz(filter.From),
		To:      domain.OptionalTimestamptz(filter.To),
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
	if err != nil {
		return nil, 0, domain.StoreUnavailable("failed to list invoices", err)
	}

	total, err := b.repo.Invoices.CountInvoicesByParty(ctx, invoices.CountInvoicesByPartyParams{
		PartyID: filter.PartyID,
		Status:  domain.OptionalText(filter.Status),
		From:    domain.OptionalTimestamptz(filter.From),
		To:      domain.OptionalTimestamptz(filter.To),
	})
	if err != nil {
		return nil, 0, domain.StoreUnavailable("failed to count invoices", err)
	}

	result := make([]*model.Invoice, 0, len(rows))
	for _, row := range rows {
		items, err := b.repo.Invoices.ListLineItems(ctx, row.ID)
		if err != nil {
			return nil, 0, domain.StoreUnavailable("failed to get invoice line items", err)
		}
		result = append(result, domain.InvoiceFromRow(row, items))
	}
	return result, total, nil
}
