package invoice

import (
	"context"
	"fmt"
	"time"

	"trm.app/billing/domain"
	"trm.app/billing/fee"
	"trm.app/billing/model"
	"trm.app/billing/repository/invoices"
)

// Sequencer reserves the next invoice sequence for an invoice type and month.
// Implementations must be bound to the transaction that writes the invoice.
type Sequencer interface {
	Next(ctx context.Context, invoiceType model.InvoiceType, yearMonth string) (int32, error)
}

type querySequencer struct {
	q invoices.Querier
}

func (s querySequencer) Next(ctx context.Context, invoiceType model.InvoiceType, yearMonth string) (int32, error) {
	return s.q.NextInvoiceSequence(ctx, invoices.NextInvoiceSequenceParams{
		InvoiceType: string(invoiceType),
		YearMonth:   yearMonth,
	})
}

// FormatNumber renders the externally visible invoice number, for example
// PH-202401-0007.
func FormatNumber(invoiceType model.InvoiceType, issuedAt time.Time, sequence int32) string {
	return fmt.Sprintf("%s-%s-%04d", invoiceType.Prefix(), issuedAt.UTC().Format("200601"), sequence)
}

// Builder turns a billable event into an unsaved invoice.
type Builder struct {
	schedule fee.Schedule
	dueAfter time.Duration
}

func NewBuilder(schedule fee.Schedule, dueAfter time.Duration) *Builder {
	return &Builder{schedule: schedule, dueAfter: dueAfter}
}

// Build prices the event and reserves its invoice number. Pay-per-hire events
// are charged the resolved rate, dunning events the schedule's late-fee rate,
// and renewals their flat price.
func (b *Builder) Build(ctx context.Context, seq Sequencer, event *model.BillableEvent, resolution *model.RateResolution, issuedAt time.Time) (*model.Invoice, error) {
	invoiceType := model.InvoiceTypeFor(event.Kind)

	item, err := b.lineItem(event, resolution)
	if err != nil {
		return nil, err
	}

	sequence, err := seq.Next(ctx, invoiceType, issuedAt.UTC().Format("200601"))
	if err != nil {
		return nil, domain.StoreUnavailable("failed to allocate invoice number", err)
	}

	inv := &model.Invoice{
		Number:          FormatNumber(invoiceType, issuedAt, sequence),
		Type:            invoiceType,
		EventID:         event.ID,
		PartyID:         event.PartyID,
		Currency:        event.Currency,
		Status:          model.InvoiceStatusPending,
		ScheduleVersion: b.schedule.Version,
		LineItems:       []model.LineItem{item},
		IssuedAt:        issuedAt.UTC(),
		DueAt:           event.OccurredAt.UTC().Add(b.dueAfter),
	}
	for _, li := range inv.LineItems {
		inv.Subtotal += li.Amount
	}
	inv.Total = inv.Subtotal
	return inv, nil
}

func (b *Builder) lineItem(event *model.BillableEvent, resolution *model.RateResolution) (model.LineItem, error) {
	provenance := &model.Provenance{
		EventID:         event.ID,
		BaseAmount:      event.Amount,
		ScheduleVersion: b.schedule.Version,
	}

	switch event.Kind {
	case model.EventKindHire:
		if resolution == nil {
			return model.LineItem{}, domain.Validation("a resolved rate is required to price a hire")
		}
		result, err := fee.Calculate(b.schedule, event.Amount, resolution.RatePercent)
		if err != nil {
			return model.LineItem{}, err
		}
		provenance.Pricing = model.PricingPercentage
		provenance.RatePercent = resolution.RatePercent
		provenance.RateSource = resolution.Source
		provenance.Tier = resolution.Tier
		applyResult(provenance, result)
		return model.LineItem{
			Description: fmt.Sprintf("Placement fee: %s%% of %d %s", resolution.RatePercent.String(), event.Amount, event.Currency),
			Quantity:    1,
			UnitPrice:   result.Fee,
			Amount:      result.Fee,
			Provenance:  provenance,
		}, nil

	case model.EventKindDunning:
		result, err := fee.Calculate(b.schedule, event.Amount, b.schedule.DunningRate)
		if err != nil {
			return model.LineItem{}, err
		}
		provenance.Pricing = model.PricingPercentage
		provenance.RatePercent = b.schedule.DunningRate
		applyResult(provenance, result)
		return model.LineItem{
			Description: fmt.Sprintf("Late payment fee for invoice %s", event.SourceRef),
			Quantity:    1,
			UnitPrice:   result.Fee,
			Amount:      result.Fee,
			Provenance:  provenance,
		}, nil

	case model.EventKindSubscriptionRenewal:
		if event.Amount <= 0 {
			return model.LineItem{}, domain.Validation(fmt.Sprintf("renewal price %d must be positive", event.Amount))
		}
		provenance.Pricing = model.PricingFlat
		provenance.BaseFee = event.Amount
		description := "Subscription renewal"
		if event.Description != "" {
			description = event.Description
		}
		return model.LineItem{
			Description: description,
			Quantity:    1,
			UnitPrice:   event.Amount,
			Amount:      event.Amount,
			Provenance:  provenance,
		}, nil
	}

	return model.LineItem{}, domain.Validation(fmt.Sprintf("unsupported event kind %q", event.Kind))
}

func applyResult(p *model.Provenance, r fee.Result) {
	p.BaseFee = r.BaseFee
	p.MinFeeApplied = r.MinFeeApplied
	p.MaxFeeApplied = r.MaxFeeApplied
}
