package notifier

import (
	"fmt"
	"net/smtp"

	"github.com/leo9226/zhs-crawler/internal/config"
	"github.com/leo9226/zhs-crawler/internal/logger"
)

// SMTPNotifier sends the court alert via plain SMTP with STARTTLS. The
// default configuration targets gmail.
type SMTPNotifier struct {
	cfg      config.SMTPConfig
	sender   string
	password string

	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates an SMTP notifier from the sender credentials.
func NewSMTPNotifier(cfg config.SMTPConfig, senderEmail, senderPassword string) (*SMTPNotifier, error) {
	if senderEmail == "" || senderPassword == "" {
		return nil, fmt.Errorf("SMTP notifications require SENDER_EMAIL and SENDER_PASSWORD")
	}
	return &SMTPNotifier{
		cfg:      cfg,
		sender:   senderEmail,
		password: senderPassword,
		send:     smtp.SendMail,
	}, nil
}

// Notify sends the composed alert to the requester's address.
func (n *SMTPNotifier) Notify(res Result) error {
	receiver := res.Request.ReceiverEmail

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		n.sender, receiver, Subject, ComposeMessage(res))

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.sender, n.password, n.cfg.Host)

	if err := n.send(addr, auth, n.sender, []string{receiver}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}

	logger.Info("email sent", logger.Fields{"to": receiver, "via": addr})
	return nil
}
