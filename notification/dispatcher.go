// Package notification delivers the notifications billing publishes after
// committing state. Delivery is best effort and never reported back to
// billing.
package notification

import (
	"context"

	"github.com/samber/lo"

	"encore.dev/rlog"

	"trm.app/billing/model"
)

type Sender interface {
	Send(ctx context.Context, n *model.Notification) error
}

type Dispatcher struct {
	webhook Sender
}

// NewDispatcher returns a dispatcher that only logs when webhook is nil.
func NewDispatcher(webhook Sender) *Dispatcher {
	return &Dispatcher{webhook: webhook}
}

// Notify logs the notification and sends it to the webhook channel when the
// notification asks for it. Delivery failures are logged and swallowed.
func (d *Dispatcher) Notify(ctx context.Context, n *model.Notification) {
	rlog.Info("notification",
		"notification_id", n.ID,
		"type", n.Type,
		"recipient_id", n.RecipientID,
		"title", n.Title,
		"channels", n.Channels,
	)

	if d.webhook == nil || !lo.Contains(n.Channels, model.ChannelWebhook) {
		return
	}
	if err := d.webhook.Send(ctx, n); err != nil {
		rlog.Error("webhook delivery failed", "notification_id", n.ID, "type", n.Type, "recipient_id", n.RecipientID, "error", err)
		return
	}
	rlog.Debug("webhook delivered", "notification_id", n.ID, "type", n.Type)
}
