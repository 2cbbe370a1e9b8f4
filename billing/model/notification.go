package model

import (
	"time"
)

type NotificationType string

const (
	NotificationInvoiceCreated       NotificationType = "invoice.created"
	NotificationInvoiceOverdue       NotificationType = "invoice.overdue"
	NotificationSubscriptionExpired  NotificationType = "subscription.expired"
	NotificationSubscriptionExpiring NotificationType = "subscription.expiring"
)

type Channel string

const (
	ChannelInApp    Channel = "in_app"
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelWebhook  Channel = "webhook"
)

// Notification is the outbound message handed to the notification dispatcher
// once billing state has been committed.
type Notification struct {
	ID          string            `json:"id"`
	Type        NotificationType  `json:"type"`
	RecipientID string            `json:"recipient_id"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	Data        map[string]string `json:"data,omitempty"`
	Channels    []Channel         `json:"channels"`
	CreatedAt   time.Time         `json:"created_at"`
}
