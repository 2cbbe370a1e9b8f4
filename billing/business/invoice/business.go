package invoice

import (
	"context"
	"time"

	"encore.dev/rlog"

	"trm.app/billing/business/notify"
	"trm.app/billing/business/rate"
	"trm.app/billing/domain"
	"trm.app/billing/fee"
	"trm.app/billing/model"
	"trm.app/billing/repository"
)

type Business interface {
	CreateInvoice(ctx context.Context, eventID int64) (*model.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (*model.Invoice, error)
	ListInvoices(ctx context.Context, filter model.ListFilter) ([]*model.Invoice, int64, error)
	UpdateInvoiceStatus(ctx context.Context, id int64, status model.InvoiceStatus) (*model.Invoice, error)
	EstimateFee(ctx context.Context, partyID string, baseAmount int64, currency string) (*model.FeeEstimate, error)
}

type business struct {
	repo      *repository.Repository
	ledger    *domain.Ledger
	rates     rate.Business
	builder   *Builder
	schedule  fee.Schedule
	publisher notify.Publisher
	now       func() time.Time
}

// NewInvoiceBusiness creates the invoicing business layer. The schedule is
// fixed for the lifetime of the returned value.
func NewInvoiceBusiness(
	repo *repository.Repository,
	ledger *domain.Ledger,
	rates rate.Business,
	publisher notify.Publisher,
	schedule fee.Schedule,
	dueAfter time.Duration,
) Business {
	return &business{
		repo:      repo,
		ledger:    ledger,
		rates:     rates,
		builder:   NewBuilder(schedule, dueAfter),
		schedule:  schedule,
		publisher: publisher,
		now:       time.Now,
	}
}

// publish hands n to the dispatcher. Billing state is already committed, so
// a failure is logged and dropped.
func (b *business) publish(ctx context.Context, n *model.Notification) {
	if b.publisher == nil {
		return
	}
	if err := b.publisher.Publish(ctx, n); err != nil {
		rlog.Error("failed to publish notification",
			"notification_id", n.ID,
			"type", n.Type,
			"recipient_id", n.RecipientID,
			"error", err,
		)
	}
}
