// internal/pkg/email/smtp.go
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// sendSMTPEmail sends email using SMTP (Gmail, Outlook, or self-hosted)
func (s *EmailService) sendSMTPEmail(email *Email) error {
	cfg := s.config.External.Email
	if cfg.SMTPHost == "" || cfg.SMTPUsername == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host or username")
	}

	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	msg := s.buildMessage(email)
	serverAddr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)

	if cfg.SMTPUseTLS {
		return s.sendSMTPWithTLS(serverAddr, auth, cfg.FromEmail, email.To, msg)
	}
	return smtp.SendMail(serverAddr, auth, cfg.FromEmail, email.To, msg)
}

// buildMessage renders the MIME message with headers in a fixed order
func (s *EmailService) buildMessage(email *Email) []byte {
	headers := [][2]string{
		{"From", s.fromAddress()},
		{"To", strings.Join(email.To, ", ")},
	}
	if len(email.CC) > 0 {
		headers = append(headers, [2]string{"Cc", strings.Join(email.CC, ", ")})
	}
	if replyTo := s.config.External.Email.ReplyTo; replyTo != "" {
		headers = append(headers, [2]string{"Reply-To", replyTo})
	}
	headers = append(headers,
		[2]string{"Subject", email.Subject},
		[2]string{"Date", time.Now().Format(time.RFC1123Z)},
		[2]string{"MIME-Version", "1.0"},
		[2]string{"Content-Type", `text/html; charset="utf-8"`},
	)

	var msg bytes.Buffer
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n")
	msg.WriteString(email.HTMLContent)

	return msg.Bytes()
}

// sendSMTPWithTLS sends email over an implicit TLS connection
func (s *EmailService) sendSMTPWithTLS(serverAddr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	client, err := s.dialTLS(serverAddr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", addr, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to send DATA command: %w", err)
	}

	if _, err := writer.Write(msg); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write email content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish email content: %w", err)
	}

	return client.Quit()
}

// TestSMTPConnection dials the SMTP server and authenticates without sending
func (s *EmailService) TestSMTPConnection() error {
	cfg := s.config.External.Email
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is not configured")
	}

	serverAddr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)

	var (
		client *smtp.Client
		err    error
	)
	if cfg.SMTPUseTLS {
		client, err = s.dialTLS(serverAddr)
	} else {
		client, err = smtp.Dial(serverAddr)
		if err == nil {
			if ok, _ := client.Extension("STARTTLS"); ok {
				err = client.StartTLS(&tls.Config{ServerName: cfg.SMTPHost})
			}
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if cfg.SMTPUsername != "" {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	return client.Quit()
}

func (s *EmailService) dialTLS(serverAddr string) (*smtp.Client, error) {
	host := s.config.External.Email.SMTPHost
	conn, err := tls.Dial("tcp", serverAddr, &tls.Config{ServerName: host})
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS connection: %w", err)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}
