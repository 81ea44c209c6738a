package mailer

import (
	"context"
	"fmt"

	"github.com/consolebusters/account-service/internal/ports"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer delivers transactional mail through the SendGrid v3 API.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridMailer(apiKey, fromEmail, fromName string) (*SendGridMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid mailer: api key is required")
	}
	if fromEmail == "" {
		return nil, fmt.Errorf("sendgrid mailer: from address is required")
	}
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

func (m *SendGridMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	from := sgmail.NewEmail(m.fromName, m.fromEmail)
	to := sgmail.NewEmail(msg.ToName, msg.To)
	htmlBody := msg.HTMLBody
	if htmlBody == "" {
		htmlBody = msg.TextBody
	}
	message := sgmail.NewSingleEmail(from, msg.Subject, to, msg.TextBody, htmlBody)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d", response.StatusCode)
	}
	return nil
}
