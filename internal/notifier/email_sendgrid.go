package notifier

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/leo9226/zhs-crawler/internal/logger"
)

// SendGridNotifier sends the court alert through the SendGrid API. Preferred
// over SMTP when SENDGRID_API_KEY is configured.
type SendGridNotifier struct {
	client *sendgrid.Client
	sender string
}

// NewSendGridNotifier creates a SendGrid notifier.
func NewSendGridNotifier(apiKey, senderEmail string) (*SendGridNotifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("SendGrid notifications require SENDGRID_API_KEY")
	}
	if senderEmail == "" {
		return nil, fmt.Errorf("SendGrid notifications require SENDER_EMAIL")
	}
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		sender: senderEmail,
	}, nil
}

// Notify sends the composed alert to the requester's address.
func (n *SendGridNotifier) Notify(res Result) error {
	from := mail.NewEmail("ZHS Crawler", n.sender)
	to := mail.NewEmail("", res.Request.ReceiverEmail)
	body := ComposeMessage(res)

	message := mail.NewSingleEmail(from, Subject, to, body, body)

	response, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("sending mail via sendgrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	logger.Info("email sent", logger.Fields{
		"to":     res.Request.ReceiverEmail,
		"via":    "sendgrid",
		"status": response.StatusCode,
	})
	return nil
}
