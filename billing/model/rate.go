package model

import (
	"github.com/shopspring/decimal"
)

type RateSource string

const (
	RateSourceSubscription RateSource = "subscription"
	RateSourceOverride     RateSource = "override"
	RateSourceDefault      RateSource = "default"
)

// RateResolution is the rate that applies to a party, and where it came from.
type RateResolution struct {
	PartyID         string          `json:"party_id"`
	RatePercent     decimal.Decimal `json:"rate_percent"`
	Source          RateSource      `json:"source"`
	Tier            string          `json:"tier,omitempty"`
	ScheduleVersion string          `json:"schedule_version"`
}

type RateOverride struct {
	PartyID     string          `json:"party_id"`
	RatePercent decimal.Decimal `json:"rate_percent"`
}

type FeeEstimate struct {
	PartyID         string          `json:"party_id"`
	BaseAmount      int64           `json:"base_amount"`
	Currency        string          `json:"currency"`
	RatePercent     decimal.Decimal `json:"rate_percent"`
	RateSource      RateSource      `json:"rate_source"`
	Tier            string          `json:"tier,omitempty"`
	BaseFee         int64           `json:"base_fee"`
	Fee             int64           `json:"fee"`
	MinFeeApplied   bool            `json:"min_fee_applied"`
	MaxFeeApplied   bool            `json:"max_fee_applied"`
	ScheduleVersion string          `json:"schedule_version"`
}
