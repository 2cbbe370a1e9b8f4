package notification

import (
	"context"
	"time"

	"encore.dev/pubsub"
	"encore.dev/rlog"

	"trm.app/billing"
	"trm.app/billing/model"
)

//encore:service
type Service struct {
	dispatcher *Dispatcher
}

func initService() (*Service, error) {
	var webhook Sender
	if cfg.Webhook.URL != "" {
		if secrets.WebhookSigningSecret == "" {
			rlog.Warn("webhook signing secret is empty, receivers will reject deliveries")
		}
		webhook = NewWebhookSender(
			cfg.Webhook.URL,
			secrets.WebhookSigningSecret,
			time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second,
			cfg.Webhook.RetryMax,
		)
	}
	return &Service{dispatcher: NewDispatcher(webhook)}, nil
}

var _ = pubsub.NewSubscription(billing.Notifications, "notification-dispatch", pubsub.SubscriptionConfig[*model.Notification]{
	Handler: pubsub.MethodHandler((*Service).HandleNotification),
})

// HandleNotification acknowledges every message. Failed webhook deliveries
// have already been retried by the sender.
func (s *Service) HandleNotification(ctx context.Context, n *model.Notification) error {
	s.dispatcher.Notify(ctx, n)
	return nil
}
