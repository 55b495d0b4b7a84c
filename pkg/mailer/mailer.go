// Package mailer sends plain-text notification emails over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Message is a single outgoing email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers messages. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpMailer struct {
	cfg Config
}

// NewSMTP returns a Mailer that opens one SMTP session per message.
func NewSMTP(cfg Config) Mailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	em := mail.NewMsg()
	if err := em.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := em.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := em.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to: %w", err)
		}
	}
	em.Subject(msg.Subject)
	em.SetBodyString(mail.TypeTextPlain, msg.Body)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, em); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
