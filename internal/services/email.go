package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shareish/shareish/internal/config"
	"github.com/shareish/shareish/internal/logging"
)

// Email is a message handed to a provider for delivery.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailProvider is the delivery backend.
type EmailProvider interface {
	Send(ctx context.Context, email *Email) error
}

// EmailService builds and sends the product emails. Delivery is best-effort:
// callers dispatch asynchronously and a failed send never fails the request
// that triggered it.
type EmailService struct {
	provider    EmailProvider
	fromAddress string
	fromName    string
	baseURL     string
	async       func(fn func())
}

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	var provider EmailProvider
	switch cfg.Provider {
	case "resend":
		provider = NewResendProvider(cfg.ResendAPIKey, cfg.FromName, cfg.FromAddress)
	case "smtp":
		provider = NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.FromName, cfg.FromAddress)
	default:
		provider = NewConsoleProvider()
	}

	return &EmailService{
		provider:    provider,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		baseURL:     cfg.BaseURL,
		async:       func(fn func()) { go fn() },
	}
}

// SetAsync overrides the dispatch mechanism; tests use it to run inline.
func (s *EmailService) SetAsync(fn func(fn func())) {
	s.async = fn
}

// SendWelcome greets a newly signed-up user.
func (s *EmailService) SendWelcome(email, firstName string) {
	s.dispatch(&Email{
		To:      email,
		Subject: "Welcome to Shareish",
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p><p>Welcome to Shareish! Add friends and start sharing.</p><p><a href="%s">Open Shareish</a></p>`,
			htmlEscape(firstName), s.baseURL,
		),
		Text: fmt.Sprintf("Hi %s,\n\nWelcome to Shareish! Add friends and start sharing.\n\n%s\n", firstName, s.baseURL),
	})
}

// SendFriendRequest tells the recipient someone wants to befriend them.
func (s *EmailService) SendFriendRequest(recipientEmail, recipientFirstName, requesterName string) {
	s.dispatch(&Email{
		To:      recipientEmail,
		Subject: "New friend request on Shareish",
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p><p>%s sent you a friend request.</p><p><a href="%s/#friends">View your requests</a></p>`,
			htmlEscape(recipientFirstName), htmlEscape(requesterName), s.baseURL,
		),
		Text: fmt.Sprintf("Hi %s,\n\n%s sent you a friend request.\n\nView your requests: %s/#friends\n",
			recipientFirstName, requesterName, s.baseURL),
	})
}

func (s *EmailService) dispatch(email *Email) {
	if s.provider == nil || s.async == nil {
		return
	}
	s.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.provider.Send(ctx, email); err != nil {
			logging.Error("Failed to send email", map[string]interface{}{
				"to":      email.To,
				"subject": email.Subject,
				"error":   err.Error(),
			})
		}
	})
}
