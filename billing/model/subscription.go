package model

import (
	"fmt"
	"time"
)

type Subscription struct {
	ID               string             `json:"id"`
	PartyID          string             `json:"party_id"`
	Tier             string             `json:"tier"`
	Status           SubscriptionStatus `json:"status"`
	Price            int64              `json:"price"`
	Currency         string             `json:"currency"`
	CurrentPeriodEnd time.Time          `json:"current_period_end"`
	AutoRenew        bool               `json:"auto_renew"`
}

type SubscriptionStatus string

const (
	SubscriptionStatusTrialing  SubscriptionStatus = "trialing"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// RenewalSourceRef identifies the renewal of one subscription period.
func RenewalSourceRef(subscriptionID string, periodEnd time.Time) string {
	return fmt.Sprintf("%s:%s", subscriptionID, periodEnd.UTC().Format(time.RFC3339))
}
