package billing

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"encore.dev/pubsub"
	"encore.dev/rlog"

	"trm.app/billing/model"
)

// Notifications carries committed billing notifications to the dispatcher.
var Notifications = pubsub.NewTopic[*model.Notification]("billing-notifications", pubsub.TopicConfig{
	DeliveryGuarantee: pubsub.AtLeastOnce,
})

type topicPublisher interface {
	Publish(ctx context.Context, msg *model.Notification) (string, error)
}

// notificationPublisher publishes off the request path. A notification that
// still fails after the retries, or outlives the timeout, is logged and dropped.
type notificationPublisher struct {
	topic      topicPublisher
	newBackOff func() backoff.BackOff
	timeout    time.Duration
	detach     func(fn func())
}

func newNotificationPublisher() *notificationPublisher {
	return &notificationPublisher{
		topic: Notifications,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxElapsedTime = 4 * time.Second
			return backoff.WithMaxRetries(b, 3)
		},
		timeout: 5 * time.Second,
		detach:  func(fn func()) { go fn() },
	}
}

func (p *notificationPublisher) Publish(ctx context.Context, n *model.Notification) error {
	// The caller's request ends before delivery does.
	ctx = context.WithoutCancel(ctx)
	p.detach(func() {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		if err := p.deliver(ctx, n); err != nil {
			rlog.Error("notification dropped", "notification_id", n.ID, "type", n.Type, "error", err)
		}
	})
	return nil
}

func (p *notificationPublisher) deliver(ctx context.Context, n *model.Notification) error {
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		id, err := p.topic.Publish(ctx, n)
		if err != nil {
			rlog.Warn("notification publish failed", "notification_id", n.ID, "type", n.Type, "attempt", attempt, "error", err)
			return err
		}
		rlog.Debug("notification published", "notification_id", n.ID, "type", n.Type, "message_id", id)
		return nil
	}, backoff.WithContext(p.newBackOff(), ctx))
}
