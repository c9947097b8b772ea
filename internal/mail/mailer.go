// Package mail provides outbound email delivery for operator notifications.
//
// It separates two concerns: Sender is the transport contract (one Send, an
// opaque success/failure, bounded by its own timeout), and Notifier is the
// policy layer that formats a stored contact message and attempts delivery
// on a primary channel with at most one fallback attempt.
package mail

import (
	"context"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Email is a plain outbound message record.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single email. Implementations must apply their own
// timeout so callers never block indefinitely, and must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// SMTPOptions configures a single SMTP delivery channel.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// SSL selects implicit TLS (port 465 style); otherwise STARTTLS is
	// required on the connection.
	SSL bool
	// Timeout bounds dial and send; defaults to 15s when zero.
	Timeout time.Duration
}

// SMTPSender delivers mail over SMTP using go-mail. A client is constructed
// per Send call; connection reuse is not worth the bookkeeping at contact
// form volumes.
type SMTPSender struct {
	opts SMTPOptions
}

// NewSMTPSender returns a Sender for the given SMTP channel.
func NewSMTPSender(opts SMTPOptions) *SMTPSender {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &SMTPSender{opts: opts}
}

// Send connects to the configured SMTP server and delivers e. The context
// and the configured timeout both bound the attempt.
func (s *SMTPSender) Send(ctx context.Context, e Email) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.opts.From); err != nil {
		return err
	}
	if err := msg.To(e.To); err != nil {
		return err
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, e.Body)

	copts := []gomail.Option{
		gomail.WithPort(s.opts.Port),
		gomail.WithTimeout(s.opts.Timeout),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.opts.Username),
		gomail.WithPassword(s.opts.Password),
	}
	if s.opts.SSL {
		copts = append(copts, gomail.WithSSL())
	} else {
		copts = append(copts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(s.opts.Host, copts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
