package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trm.app/billing/model"
)

func TestCanTransitionEvent(t *testing.T) {
	testCases := []struct {
		from     model.EventState
		to       model.EventState
		expected bool
	}{
		{model.EventStatePending, model.EventStateInvoiced, true},
		{model.EventStateInvoiced, model.EventStatePaid, true},
		{model.EventStateInvoiced, model.EventStateFailed, true},
		{model.EventStatePending, model.EventStatePaid, false},
		{model.EventStatePaid, model.EventStateInvoiced, false},
		{model.EventStateFailed, model.EventStatePaid, false},
		{model.EventStateInvoiced, model.EventStatePending, false},
	}
	for _, tc := range testCases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.expected, CanTransitionEvent(tc.from, tc.to))
		})
	}
}

func TestCanTransitionInvoice(t *testing.T) {
	assert.True(t, CanTransitionInvoice(model.InvoiceStatusPending, model.InvoiceStatusPaid))
	assert.True(t, CanTransitionInvoice(model.InvoiceStatusPending, model.InvoiceStatusCancelled))
	assert.False(t, CanTransitionInvoice(model.InvoiceStatusPaid, model.InvoiceStatusFailed))
	assert.False(t, CanTransitionInvoice(model.InvoiceStatusCancelled, model.InvoiceStatusPending))
}

func TestEventStateForInvoice(t *testing.T) {
	state, ok := EventStateForInvoice(model.InvoiceStatusPaid)
	assert.True(t, ok)
	assert.Equal(t, model.EventStatePaid, state)

	state, ok = EventStateForInvoice(model.InvoiceStatusFailed)
	assert.True(t, ok)
	assert.Equal(t, model.EventStateFailed, state)

	_, ok = EventStateForInvoice(model.InvoiceStatusCancelled)
	assert.False(t, ok)
}
