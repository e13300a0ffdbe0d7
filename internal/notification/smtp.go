package notification

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTPConfig holds the outbound mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

// Enabled reports whether mail delivery is configured
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type mailClient struct {
	cfg SMTPConfig
}

// send delivers one message to the recipients
func (c *mailClient) send(to []string, subject, body string) error {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", c.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	var auth sasl.Client
	if c.cfg.Username != "" {
		auth = sasl.NewPlainClient("", c.cfg.Username, c.cfg.Password)
	}

	reader := strings.NewReader(msg.String())
	if c.cfg.UseTLS {
		if err := smtp.SendMailTLS(addr, auth, c.cfg.From, to, reader); err != nil {
			return fmt.Errorf("failed to send mail: %w", err)
		}
		return nil
	}
	if err := smtp.SendMail(addr, auth, c.cfg.From, to, reader); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
