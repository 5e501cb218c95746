package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/shareish/shareish/internal/logging"
)

// ResendProvider delivers through the Resend API.
type ResendProvider struct {
	client *resend.Client
	from   string
}

func NewResendProvider(apiKey, fromName, fromAddress string) *ResendProvider {
	return &ResendProvider{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromAddress),
	}
}

func (p *ResendProvider) Send(ctx context.Context, email *Email) error {
	params := &resend.SendEmailRequest{
		From:    p.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}
	if _, err := p.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("sending via resend: %w", err)
	}
	return nil
}

// SMTPProvider delivers through a plain SMTP relay (Mailpit in local dev).
type SMTPProvider struct {
	addr string
	from string
}

func NewSMTPProvider(host string, port int, fromName, fromAddress string) *SMTPProvider {
	return &SMTPProvider{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: fromAddress,
	}
}

func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	msg := strings.Join([]string{
		"From: " + p.from,
		"To: " + email.To,
		"Subject: " + email.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		email.Text,
	}, "\r\n")

	if err := smtp.SendMail(p.addr, nil, p.from, []string{email.To}, []byte(msg)); err != nil {
		return fmt.Errorf("sending via smtp: %w", err)
	}
	return nil
}

// ConsoleProvider logs instead of sending; the default outside production.
type ConsoleProvider struct{}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

func (p *ConsoleProvider) Send(ctx context.Context, email *Email) error {
	logging.Info("Email (console provider)", map[string]interface{}{
		"to":      email.To,
		"subject": email.Subject,
		"text":    email.Text,
	})
	return nil
}

func htmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(value)
}
