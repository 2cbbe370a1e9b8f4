package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID              int64         `json:"id"`
	Number          string        `json:"number"`
	Type            InvoiceType   `json:"type"`
	EventID         int64         `json:"event_id"`
	PartyID         string        `json:"party_id"`
	Currency        string        `json:"currency"`
	Subtotal        int64         `json:"subtotal"`
	Total           int64         `json:"total"`
	Status          InvoiceStatus `json:"status"`
	ScheduleVersion string        `json:"schedule_version"`
	LineItems       []LineItem    `json:"line_items"`
	IssuedAt        time.Time     `json:"issued_at"`
	DueAt           time.Time     `json:"due_at"`
	PaidAt          *time.Time    `json:"paid_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type LineItem struct {
	ID          int64       `json:"id,omitempty"`
	Description string      `json:"description"`
	Quantity    int64       `json:"quantity"`
	UnitPrice   int64       `json:"unit_price"`
	Amount      int64       `json:"amount"`
	Provenance  *Provenance `json:"provenance,omitempty"`
}

// Provenance records how a line item amount was computed so it can be audited later.
type Provenance struct {
	EventID         int64           `json:"event_id"`
	Pricing         PricingMode     `json:"pricing"`
	BaseAmount      int64           `json:"base_amount"`
	RatePercent     decimal.Decimal `json:"rate_percent"`
	RateSource      RateSource      `json:"rate_source,omitempty"`
	Tier            string          `json:"tier,omitempty"`
	BaseFee         int64           `json:"base_fee"`
	MinFeeApplied   bool            `json:"min_fee_applied"`
	MaxFeeApplied   bool            `json:"max_fee_applied"`
	ScheduleVersion string          `json:"schedule_version"`
}

type PricingMode string

const (
	PricingPercentage PricingMode = "percentage"
	PricingFlat       PricingMode = "flat"
)

type InvoiceType string

const (
	InvoiceTypePayPerHire          InvoiceType = "pay_per_hire"
	InvoiceTypeSubscriptionRenewal InvoiceType = "subscription_renewal"
	InvoiceTypeDunning             InvoiceType = "dunning"
)

// Prefix is the number prefix of the invoice type. It is part of the
// externally visible invoice number and must not change.
func (t InvoiceType) Prefix() string {
	switch t {
	case InvoiceTypePayPerHire:
		return "PH"
	case InvoiceTypeSubscriptionRenewal:
		return "SUB"
	case InvoiceTypeDunning:
		return "DUN"
	default:
		return "INV"
	}
}

// InvoiceTypeFor maps an event kind to the invoice type it produces.
func InvoiceTypeFor(kind EventKind) InvoiceType {
	switch kind {
	case EventKindSubscriptionRenewal:
		return InvoiceTypeSubscriptionRenewal
	case EventKindDunning:
		return InvoiceTypeDunning
	default:
		return InvoiceTypePayPerHire
	}
}

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusFailed    InvoiceStatus = "failed"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)
