package notification

import (
	"encore.dev/config"
)

type WebhookConfig struct {
	// URL receives every notification routed to the webhook channel. Empty
	// disables webhook delivery.
	URL            string
	TimeoutSeconds int
	RetryMax       int
}

type Config struct {
	Webhook WebhookConfig
}

var cfg = config.Load[*Config]()

var secrets struct {
	// WebhookSigningSecret keys the X-TRM-Signature HMAC.
	WebhookSigningSecret string
}
