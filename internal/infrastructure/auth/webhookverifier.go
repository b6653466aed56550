package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"subplane/internal/shared/biztime"
)

const (
	webhookSecretPrefix = "whsec_"

	headerWebhookID        = "webhook-id"
	headerWebhookTimestamp = "webhook-timestamp"
	headerWebhookSignature = "webhook-signature"

	// DefaultWebhookTolerance bounds the accepted clock skew between the
	// provider's timestamp header and local time.
	DefaultWebhookTolerance = 5 * time.Minute
)

// WebhookVerifier checks provider-signed webhook envelopes. The scheme is
// HMAC-SHA256 over "id.timestamp.body" with a shared secret; the signature
// header carries space-separated "v1,<base64>" entries.
type WebhookVerifier struct {
	secret    []byte
	tolerance time.Duration
}

func NewWebhookVerifier(secret string, tolerance time.Duration) (*WebhookVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("webhook signing secret is required")
	}
	// The provider issues secrets as whsec_<base64>.
	encoded := strings.TrimPrefix(secret, webhookSecretPrefix)
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode webhook signing secret: %w", err)
	}

	if tolerance <= 0 {
		tolerance = DefaultWebhookTolerance
	}

	return &WebhookVerifier{
		secret:    key,
		tolerance: tolerance,
	}, nil
}

// Verify validates the three signature headers against the raw request
// body. Missing or malformed headers are verification failures, not parse
// errors; every failure path returns an error the HTTP layer maps to a
// plain 401.
func (v *WebhookVerifier) Verify(headers http.Header, body []byte) error {
	msgID := headers.Get(headerWebhookID)
	msgTimestamp := headers.Get(headerWebhookTimestamp)
	msgSignature := headers.Get(headerWebhookSignature)
	if msgID == "" || msgTimestamp == "" || msgSignature == "" {
		return fmt.Errorf("missing webhook signature headers")
	}

	timestamp, err := strconv.ParseInt(msgTimestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed webhook timestamp: %w", err)
	}

	age := biztime.NowUTC().Sub(time.Unix(timestamp, 0))
	if age > v.tolerance || age < -v.tolerance {
		return fmt.Errorf("webhook timestamp outside tolerance")
	}

	expected := v.sign(msgID, msgTimestamp, body)

	// The header may list multiple signatures (e.g. after a secret
	// rotation); any matching v1 entry passes.
	for _, candidate := range strings.Split(msgSignature, " ") {
		version, sig, found := strings.Cut(candidate, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}

	return fmt.Errorf("no matching webhook signature")
}

// Sign produces the v1 signature for the given envelope; used by tests
// and by deployment tooling that replays events.
func (v *WebhookVerifier) Sign(msgID, msgTimestamp string, body []byte) string {
	return "v1," + v.sign(msgID, msgTimestamp, body)
}

func (v *WebhookVerifier) sign(msgID, msgTimestamp string, body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%s.%s.", msgID, msgTimestamp)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
