package notify

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"trm.app/billing/model"
)

// now is swapped in tests.
var now = time.Now

func newNotification(typ model.NotificationType, recipient, title, message string, data map[string]string, channels ...model.Channel) *model.Notification {
	return &model.Notification{
		ID:          uuid.NewString(),
		Type:        typ,
		RecipientID: recipient,
		Title:       title,
		Message:     message,
		Data:        data,
		Channels:    channels,
		CreatedAt:   now().UTC(),
	}
}

func invoiceData(inv *model.Invoice) map[string]string {
	return map[string]string{
		"invoice_id":     strconv.FormatInt(inv.ID, 10),
		"invoice_number": inv.Number,
		"invoice_type":   string(inv.Type),
		"event_id":       strconv.FormatInt(inv.EventID, 10),
		"total":          strconv.FormatInt(inv.Total, 10),
		"currency":       inv.Currency,
		"due_at":         inv.DueAt.UTC().Format(time.RFC3339),
	}
}

func InvoiceCreated(inv *model.Invoice) *model.Notification {
	typ := model.NotificationInvoiceCreated
	title := fmt.Sprintf("Invoice %s issued", inv.Number)
	message := fmt.Sprintf("Invoice %s for %d %s is due on %s.", inv.Number, inv.Total, inv.Currency, inv.DueAt.UTC().Format("2006-01-02"))
	if inv.Type == model.InvoiceTypeDunning {
		typ = model.NotificationInvoiceOverdue
		title = fmt.Sprintf("Late payment fee %s", inv.Number)
		message = fmt.Sprintf("A late payment fee of %d %s was charged for an overdue invoice.", inv.Total, inv.Currency)
		return newNotification(typ, inv.PartyID, title, message, invoiceData(inv),
			model.ChannelInApp, model.ChannelEmail, model.ChannelWhatsApp, model.ChannelWebhook)
	}
	return newNotification(typ, inv.PartyID, title, message, invoiceData(inv),
		model.ChannelInApp, model.ChannelEmail, model.ChannelWebhook)
}

func subscriptionData(sub *model.Subscription) map[string]string {
	return map[string]string{
		"subscription_id":    sub.ID,
		"tier":               sub.Tier,
		"current_period_end": sub.CurrentPeriodEnd.UTC().Format(time.RFC3339),
	}
}

func SubscriptionExpired(sub *model.Subscription) *model.Notification {
	return newNotification(
		model.NotificationSubscriptionExpired,
		sub.PartyID,
		"Subscription expired",
		fmt.Sprintf("Your %s subscription ended on %s.", sub.Tier, sub.CurrentPeriodEnd.UTC().Format("2006-01-02")),
		subscriptionData(sub),
		model.ChannelInApp, model.ChannelEmail, model.ChannelWebhook,
	)
}

func SubscriptionExpiring(sub *model.Subscription, asOf time.Time) *model.Notification {
	days := int(sub.CurrentPeriodEnd.Sub(asOf).Hours() / 24)
	data := subscriptionData(sub)
	data["days_remaining"] = strconv.Itoa(days)
	return newNotification(
		model.NotificationSubscriptionExpiring,
		sub.PartyID,
		"Subscription ending soon",
		fmt.Sprintf("Your %s subscription ends on %s and will not renew.", sub.Tier, sub.CurrentPeriodEnd.UTC().Format("2006-01-02")),
		data,
		model.ChannelInApp, model.ChannelEmail, model.ChannelWhatsApp,
	)
}
