// Package mailer sends transactional and newsletter emails over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

type Message struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type smtpMailer struct {
	cfg Config
}

// New returns an SMTP mailer, or a logging mailer when no host is
// configured so that local environments never hit a real server.
func New(cfg Config) Mailer {
	if cfg.Host == "" {
		log.Warn().Msg("SMTP_HOST is not set, emails will only be logged")
		return &logMailer{}
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	mm, err := BuildMessage(m.cfg, msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}

// BuildMessage assembles a multipart message with a plain text body and an
// optional HTML alternative.
func BuildMessage(cfg Config, msg Message) (*mail.Msg, error) {
	mm := mail.NewMsg()

	if cfg.FromName != "" {
		if err := mm.FromFormat(cfg.FromName, cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender address: %w", err)
		}
	} else if err := mm.From(cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	if msg.ToName != "" {
		if err := mm.AddToFormat(msg.ToName, msg.To); err != nil {
			return nil, fmt.Errorf("invalid recipient address: %w", err)
		}
	} else if err := mm.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		mm.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	}
	return mm, nil
}

type logMailer struct{}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("text_len", len(msg.TextBody)).
		Msg("email (not sent, smtp disabled)")
	return nil
}
