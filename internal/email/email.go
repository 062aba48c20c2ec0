package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Notifier delivers the magic link out-of-band. The auth core never sees
// how; it only hands over the plaintext link once.
type Notifier interface {
	SendMagicLink(ctx context.Context, to, employeeID, displayName, link string, ttlMinutes int) error
}

const magicLinkSubject = "🔑 HR Chatbot Login Link"

func magicLinkBody(displayName, employeeID, link string, ttlMinutes int) string {
	return fmt.Sprintf(
		`<p>Hi %s (%s),</p>
<p>Click the link below to sign in. It expires in %d minutes and works once:</p>
<p><a href="%s">%s</a></p>
<p>If you didn't request this, you can ignore this email.</p>`,
		displayName, employeeID, ttlMinutes, link, link,
	)
}

// LogNotifier logs the link instead of sending it. Used in ENV=local.
type LogNotifier struct {
	logger *slog.Logger
}

func (n *LogNotifier) SendMagicLink(ctx context.Context, to, employeeID, displayName, link string, ttlMinutes int) error {
	n.logger.InfoContext(ctx, "magic link email (local dev)",
		"to", to, "employee_id", employeeID, "name", displayName,
		"link", link, "ttl_minutes", ttlMinutes)
	return nil
}

// ResendNotifier sends the link via the Resend API in staging/production.
type ResendNotifier struct {
	client *resend.Client
	from   string
}

func (n *ResendNotifier) SendMagicLink(ctx context.Context, to, employeeID, displayName, link string, ttlMinutes int) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: magicLinkSubject,
		Html:    magicLinkBody(displayName, employeeID, link, ttlMinutes),
	}
	_, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewNotifier returns a LogNotifier for ENV=local, ResendNotifier otherwise.
func NewNotifier(env, apiKey, from string, logger *slog.Logger) Notifier {
	if env == "local" {
		return &LogNotifier{logger: logger}
	}
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}
