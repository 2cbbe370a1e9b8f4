package domain

import (
	"slices"

	"trm.app/billing/model"
)

var eventTransitions = map[model.EventState][]model.EventState{
	model.EventStatePending:  {model.EventStateInvoiced},
	model.EventStateInvoiced: {model.EventStatePaid, model.EventStateFailed},
}

var invoiceTransitions = map[model.InvoiceStatus][]model.InvoiceStatus{
	model.InvoiceStatusPending: {model.InvoiceStatusPaid, model.InvoiceStatusFailed, model.InvoiceStatusCancelled},
}

func CanTransitionEvent(from, to model.EventState) bool {
	return slices.Contains(eventTransitions[from], to)
}

func CanTransitionInvoice(from, to model.InvoiceStatus) bool {
	return slices.Contains(invoiceTransitions[from], to)
}

// EventStateForInvoice is the state a settled invoice moves its event to.
// Cancelling an invoice leaves the event invoiced.
func EventStateForInvoice(status model.InvoiceStatus) (model.EventState, bool) {
	switch status {
	case model.InvoiceStatusPaid:
		return model.EventStatePaid, true
	case model.InvoiceStatusFailed:
		return model.EventStateFailed, true
	}
	return "", false
}
