// Package services – ContactService
//
// This file implements ContactService, the application-level component that
// owns the contact submission pipeline: field validation and normalization,
// spam scoring, transactional persistence, and conditional operator
// notification. The spam score gates notification only; every valid
// submission is persisted regardless of its score, and a notification
// failure never invalidates a persisted submission.
//
// Observability: Submit is OpenTelemetry-instrumented; spans carry the
// origin address but never the message body or sender email.
package services

import (
	"context"
	nmail "net/mail"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
	"github.com/cbouguerba/portfolio-backend/internal/repo"
	"github.com/cbouguerba/portfolio-backend/internal/spam"
)

const (
	maxNameRunes    = 100
	maxEmailRunes   = 120
	minSubjectRunes = 5
	maxSubjectRunes = 200
	minBodyRunes    = 10
	maxBodyRunes    = 2000
)

// MessageNotifier dispatches an operator notification for a stored message.
// Implementations must treat delivery as best-effort and bounded by their
// own timeouts.
type MessageNotifier interface {
	NotifyNewMessage(ctx context.Context, m *domain.Message) error
}

// SubmitInput carries one raw contact-form submission plus request metadata.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Body    string

	// IPAddress and UserAgent are stored as given; both may be empty.
	IPAddress string
	UserAgent string
}

// ContactService coordinates validation, spam scoring, persistence, and
// notification for inbound contact submissions.
type ContactService struct {
	DB *gorm.DB

	// Notifier may be nil, in which case no delivery is ever attempted
	// (useful in tests and local development without SMTP credentials).
	Notifier MessageNotifier
}

// Submit runs the full intake pipeline for one submission.
//
// Stages, in order:
//  1. Trim and validate all four required fields; the email is lower-cased.
//     Validation failures return the sentinel errors from errors.go and
//     leave no trace in storage.
//  2. Score the trimmed body and normalized email with the spam heuristic.
//  3. Persist the message in its own transaction. A storage failure rolls
//     the transaction back and is returned to the caller.
//  4. If the score is below the spam threshold, dispatch the operator
//     notification. Delivery failure (including the single fallback) is
//     logged and swallowed: the submission already succeeded.
//
// The returned message reflects the stored row. The spam score is never
// reported to the submitting caller.
func (s *ContactService) Submit(ctx context.Context, in SubmitInput) (*domain.Message, error) {
	tr := otel.Tracer("services/ContactService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(attribute.String("origin.ip", in.IPAddress)),
	)
	defer span.End()

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	subject := strings.TrimSpace(in.Subject)
	body := strings.TrimSpace(in.Body)

	if name == "" || email == "" || subject == "" || body == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(name) > maxNameRunes {
		return nil, ErrNameLength
	}
	if utf8.RuneCountInString(email) > maxEmailRunes || !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if n := utf8.RuneCountInString(subject); n < minSubjectRunes || n > maxSubjectRunes {
		return nil, ErrSubjectLength
	}
	if n := utf8.RuneCountInString(body); n < minBodyRunes || n > maxBodyRunes {
		return nil, ErrBodyLength
	}

	score := spam.Score(body, email)

	msg := &domain.Message{
		Name:      name,
		Email:     email,
		Subject:   subject,
		Body:      body,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		SpamScore: score,
	}

	// Persistence commits before any delivery attempt: every notified
	// message was durably stored first.
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repo.CreateMessage(tx, msg)
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Float64("spam.score", score))

	if spam.Likely(score) {
		log.Info().Uint("message_id", msg.ID).Float64("spam_score", score).
			Msg("high spam score, notification suppressed")
		return msg, nil
	}

	if s.Notifier != nil {
		if nerr := s.Notifier.NotifyNewMessage(ctx, msg); nerr != nil {
			// Absorbed: the message is stored, delivery is best-effort.
			log.Error().Err(nerr).Uint("message_id", msg.ID).
				Msg("notification delivery failed on all channels")
		}
	}

	return msg, nil
}

// validEmail reports whether addr is a plausible bare email address.
// net/mail accepts display names ("A <a@b.c>"); reject those since the
// form field should carry the address alone.
func validEmail(addr string) bool {
	parsed, err := nmail.ParseAddress(addr)
	if err != nil {
		return false
	}
	return parsed.Address == addr
}
