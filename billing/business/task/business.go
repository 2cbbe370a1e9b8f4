package task

import (
	"context"
	"fmt"
	"time"

	"encore.dev/rlog"

	"trm.app/billing/business/invoice"
	"trm.app/billing/business/notify"
	"trm.app/billing/domain"
	"trm.app/billing/model"
	"trm.app/billing/repository"
)

// Business selects and processes the work items of the scheduled billing
// tasks. Selection is re-runnable: an item that was already handled is either
// not selected again or processes to a no-op.
type Business interface {
	SelectItems(ctx context.Context, task model.TaskName, asOf time.Time) ([]string, error)
	ProcessItem(ctx context.Context, task model.TaskName, itemID string, asOf time.Time) (*model.ItemResult, error)
}

type Config struct {
	// PayPerHireGrace is how long a hire stays uninvoiced so upstream can
	// correct or cancel it.
	PayPerHireGrace time.Duration
	// WarningWindow is how far ahead of its period end a non-renewing
	// subscription is warned.
	WarningWindow time.Duration
	// SelectLimit caps the items one run selects. Leftovers are picked up by
	// the next run.
	SelectLimit int32
}

type handler struct {
	selectItems func(ctx context.Context, asOf time.Time) ([]string, error)
	process     func(ctx context.Context, itemID string, asOf time.Time) (*model.ItemResult, error)
}

type business struct {
	repo      *repository.Repository
	invoices  invoice.Business
	publisher notify.Publisher
	cfg       Config
	handlers  map[model.TaskName]handler
}

func NewTaskBusiness(repo *repository.Repository, invoices invoice.Business, publisher notify.Publisher, cfg Config) Business {
	b := &business{
		repo:      repo,
		invoices:  invoices,
		publisher: publisher,
		cfg:       cfg,
	}
	b.handlers = map[model.TaskName]handler{
		model.TaskProcessExpired:     {selectItems: b.selectExpired, process: b.processExpired},
		model.TaskGenerateRenewals:   {selectItems: b.selectRenewals, process: b.processInvoice},
		model.TaskGeneratePayPerHire: {selectItems: b.selectPayPerHire, process: b.processInvoice},
		model.TaskProcessDunning:     {selectItems: b.selectDunning, process: b.processInvoice},
		model.TaskSendWarnings:       {selectItems: b.selectWarnings, process: b.processWarning},
	}
	return b
}

func (b *business) handler(task model.TaskName) (handler, error) {
	h, ok := b.handlers[task]
	if !ok {
		return handler{}, domain.Validation(fmt.Sprintf("unknown billing task %q", task))
	}
	return h, nil
}

func (b *business) SelectItems(ctx context.Context, task model.TaskName, asOf time.Time) ([]string, error) {
	h, err := b.handler(task)
	if err != nil {
		return nil, err
	}
	items, err := h.selectItems(ctx, asOf.UTC())
	if err != nil {
		rlog.Error("failed to select billing task items", "task", task, "as_of", asOf, "error", err)
		return nil, err
	}
	rlog.Info("selected billing task items", "task", task, "as_of", asOf, "count", len(items))
	return items, nil
}

func (b *business) ProcessItem(ctx context.Context, task model.TaskName, itemID string, asOf time.Time) (*model.ItemResult, error) {
	h, err := b.handler(task)
	if err != nil {
		return nil, err
	}
	return h.process(ctx, itemID, asOf.UTC())
}

func (b *business) publish(ctx context.Context, n *model.Notification) {
	if b.publisher == nil {
		return
	}
	if err := b.publisher.Publish(ctx, n); err != nil {
		rlog.Error("failed to publish notification", "notification_id", n.ID, "type", n.Type, "recipient_id", n.RecipientID, "error", err)
	}
}
