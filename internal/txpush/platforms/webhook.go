package platforms

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

const SignatureHeader = "X-Hero-Signature"

// WebhookAdapter posts the raw event JSON. With a secret, the body is
// signed as hex(HMAC-SHA256(secret, body)) in SignatureHeader.
type WebhookAdapter struct {
	client *HTTPClient
}

func NewWebhookAdapter(client *HTTPClient) *WebhookAdapter {
	return &WebhookAdapter{client: client}
}

func (a *WebhookAdapter) Name() string {
	return "webhook"
}

func (a *WebhookAdapter) Send(ctx context.Context, endpoint, secret string, msg Message) error {
	raw, err := json.Marshal(msg.Payload)
	if err != nil {
		return err
	}
	var headers map[string]string
	if secret != "" {
		headers = map[string]string{SignatureHeader: Sign(secret, raw)}
	}
	return a.client.PostRaw(ctx, endpoint, headers, raw)
}

func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
