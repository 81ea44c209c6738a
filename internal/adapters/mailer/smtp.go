package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/consolebusters/account-service/internal/ports"
)

// SMTPMailer delivers mail through a plain SMTP relay. Intended for local
// and staging environments where a SendGrid key is not provisioned.
type SMTPMailer struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	fromName  string
}

func NewSMTPMailer(host, port, username, password, fromEmail, fromName string) (*SMTPMailer, error) {
	if host == "" || port == "" {
		return nil, fmt.Errorf("smtp mailer: host and port are required")
	}
	if fromEmail == "" {
		return nil, fmt.Errorf("smtp mailer: from address is required")
	}
	return &SMTPMailer{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

func (m *SMTPMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	body := msg.HTMLBody
	contentType := "text/html; charset=UTF-8"
	if body == "" {
		body = msg.TextBody
		contentType = "text/plain; charset=UTF-8"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.fromName, m.fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n", contentType)
	b.WriteString(body)

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.fromEmail, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
