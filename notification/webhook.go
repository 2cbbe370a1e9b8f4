package notification

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"encore.dev/rlog"

	"trm.app/billing/model"
)

const (
	HeaderSignature = "X-TRM-Signature"
	HeaderTimestamp = "X-TRM-Timestamp"
	HeaderEvent     = "X-TRM-Event"
	signatureScheme = "v1"
)

// Sign returns the X-TRM-Signature value for body sent at timestamp.
func Sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return signatureScheme + "=" + hex.EncodeToString(mac.Sum(nil))
}

type WebhookSender struct {
	url    string
	secret string
	client *retryablehttp.Client
	now    func() time.Time
}

func NewWebhookSender(url, secret string, timeout time.Duration, retryMax int) *WebhookSender {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = timeout
	client.Logger = rlogAdapter{}
	return &WebhookSender{url: url, secret: secret, client: client, now: time.Now}
}

func (s *WebhookSender) Send(ctx context.Context, n *model.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification %s: %w", n.ID, err)
	}
	timestamp := strconv.FormatInt(s.now().Unix(), 10)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, string(n.Type))
	req.Header.Set(HeaderTimestamp, timestamp)
	req.Header.Set(HeaderSignature, Sign(s.secret, timestamp, body))

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook %s: %w", n.ID, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("deliver webhook %s: unexpected status %d", n.ID, resp.StatusCode)
	}
	return nil
}

// rlogAdapter routes retryablehttp logs to rlog.
type rlogAdapter struct{}

func (rlogAdapter) Error(msg string, keysAndValues ...interface{}) { rlog.Error(msg, keysAndValues...) }
func (rlogAdapter) Warn(msg string, keysAndValues ...interface{})  { rlog.Warn(msg, keysAndValues...) }
func (rlogAdapter) Info(msg string, keysAndValues ...interface{})  { rlog.Debug(msg, keysAndValues...) }
func (rlogAdapter) Debug(msg string, keysAndValues ...interface{}) { rlog.Debug(msg, keysAndValues...) }
