package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
)

// userAgentMaxLen caps the user-agent fragment included in notifications.
const userAgentMaxLen = 100

// Notifier formats operator notifications for stored contact messages and
// delivers them best-effort: one attempt on the primary channel, then at
// most one on the fallback channel with identical content. Fallback may be
// nil when only one channel is configured.
type Notifier struct {
	Primary  Sender
	Fallback Sender
	// Operator is the fixed mailbox all notifications are addressed to.
	Operator string
}

// NotifyNewMessage delivers a notification describing m. It returns an
// error only when every configured channel failed; callers log that error
// and must never surface it to the submitting caller.
func (n *Notifier) NotifyNewMessage(ctx context.Context, m *domain.Message) error {
	e := Email{
		To:      n.Operator,
		Subject: "New portfolio message: " + m.Subject,
		Body:    formatNotification(m),
	}

	primaryErr := n.Primary.Send(ctx, e)
	if primaryErr == nil {
		return nil
	}
	if n.Fallback == nil {
		return primaryErr
	}

	log.Warn().Err(primaryErr).Uint("message_id", m.ID).
		Msg("primary notification channel failed, trying fallback")

	if err := n.Fallback.Send(ctx, e); err != nil {
		return fmt.Errorf("primary: %v; fallback: %w", primaryErr, err)
	}
	return nil
}

// formatNotification renders the plain-text operator email body.
func formatNotification(m *domain.Message) string {
	ua := m.UserAgent
	if ua == "" {
		ua = "N/A"
	} else if len(ua) > userAgentMaxLen {
		ua = ua[:userAgentMaxLen]
	}

	return fmt.Sprintf(`New message from your portfolio website

Contact information:
  Name:    %s
  Email:   %s
  Subject: %s

Message:
%s

Technical details:
  Date:       %s
  IP address: %s
  User agent: %s
`,
		m.Name,
		m.Email,
		m.Subject,
		m.Body,
		m.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		m.IPAddress,
		ua,
	)
}
