// Package mailer delivers transactional email.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrDisabled is returned by senders that do not deliver anything.
var ErrDisabled = errors.New("mailer: no provider configured")

// Delivery describes what the provider accepted.
type Delivery struct {
	StatusCode int
	MessageID  string
}

type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
	log    *slog.Logger
}

func NewSendGridSender(apiKey, fromEmail, fromName string, log *slog.Logger) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
		log:    log,
	}
}

func (s *SendGridSender) Send(ctx context.Context, to, subject, htmlBody string) (Delivery, error) {
	if err := ctx.Err(); err != nil {
		return Delivery{}, err
	}

	msg := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), "", htmlBody)
	resp, err := s.client.Send(msg)
	if err != nil {
		return Delivery{}, fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return Delivery{StatusCode: resp.StatusCode}, fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}

	d := Delivery{StatusCode: resp.StatusCode}
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		d.MessageID = ids[0]
	}
	s.log.Info("mail.sent", "to", to, "status", resp.StatusCode)
	return d, nil
}

// LogSender stands in for a provider when none is configured.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, subject, _ string) (Delivery, error) {
	s.log.Debug("mail.skipped", "to", to, "subject", subject)
	return Delivery{}, ErrDisabled
}
