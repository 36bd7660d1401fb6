package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridProvider delivers guest mail through the SendGrid API
type SendGridProvider struct {
	fromEmail string
	fromName  string
	client    *sendgrid.Client
}

func NewSendGridProvider(apiKey, fromEmail, fromName string) *SendGridProvider {
	return &SendGridProvider{
		fromEmail: fromEmail,
		fromName:  fromName,
		client:    sendgrid.NewSendClient(apiKey),
	}
}

func (p *SendGridProvider) Send(ctx context.Context, to, subject, body string, isHTML bool) error {
	contentType := "text/plain"
	if isHTML {
		contentType = "text/html"
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(p.fromName, p.fromEmail))
	message.Subject = subject

	recipient := mail.NewPersonalization()
	recipient.AddTos(mail.NewEmail("", to))
	message.AddPersonalizations(recipient)
	message.AddContent(mail.NewContent(contentType, body))

	response, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid status %d: %s", response.StatusCode, response.Body)
	}

	return nil
}
