// internal/adapters/out/mail/sendgrid_client.go
package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/metadataee/metadata/internal/platform/logging"
)

const (
	defaultFromName = "Token Launcher"
	sendEndpoint    = "/v3/mail/send"
	maxErrorBody    = 1024
)

// SendGridClient implements EmailClient over the SendGrid v3 mail API.
type SendGridClient struct {
	apiKey   string
	fromName string
	host     string // empty means the SendGrid default host

	log *zap.Logger
}

func NewSendGridClient(apiKey, fromName string, logger *zap.Logger) *SendGridClient {
	fromName = strings.TrimSpace(fromName)
	if fromName == "" {
		fromName = defaultFromName
	}
	return &SendGridClient{
		apiKey:   strings.TrimSpace(apiKey),
		fromName: fromName,
		log:      logging.OrNop(logger).Named("sendgrid"),
	}
}

// Send sends one plain-text mail; the HTML part is the same text in <pre>.
func (c *SendGridClient) Send(ctx context.Context, from, to, subject, body string) error {
	if c.apiKey == "" {
		return errors.New("sendgrid api key is empty")
	}
	if strings.TrimSpace(from) == "" {
		return errors.New("from address is empty")
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("to address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(c.fromName, from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", html.EscapeString(body)),
	)

	client := sendgrid.NewSendClient(c.apiKey)
	if c.host != "" {
		client.BaseURL = strings.TrimRight(c.host, "/") + sendEndpoint
	}

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		respBody := response.Body
		if len(respBody) > maxErrorBody {
			respBody = respBody[:maxErrorBody]
		}
		c.log.Error("send failed", zap.Int("status", response.StatusCode), zap.String("body", respBody))
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, respBody)
	}

	c.log.Info("mail sent",
		zap.Int("status", response.StatusCode),
		zap.String("to", logging.MaskShort(to)),
		zap.String("subject", subject),
	)
	return nil
}
