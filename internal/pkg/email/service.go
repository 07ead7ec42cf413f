// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

const orderConfirmationTemplate = "order_confirmation"

// EmailService handles all email operations
type EmailService struct {
	config    *config.Config
	logger    *logrus.Logger
	templates map[string]*template.Template
	client    *http.Client
	endpoints apiEndpoints
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config, logger *logrus.Logger) *EmailService {
	service := &EmailService{
		config:    cfg,
		logger:    logger,
		templates: make(map[string]*template.Template),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoints: defaultEndpoints,
	}

	service.loadTemplates()

	return service
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	switch s.config.External.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "resend":
		return s.sendResendEmail(ctx, email)
	case "sendgrid":
		return s.sendSendGridEmail(ctx, email)
	case "mailersend":
		return s.sendMailerSendEmail(ctx, email)
	case "log":
		return s.sendLogEmail(email)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// SendOrderConfirmationEmail sends order confirmation email
func (s *EmailService) SendOrderConfirmationEmail(ctx context.Context, data OrderConfirmationData) error {
	data.EmailTemplateData = GetBaseTemplateData(
		s.config.App.CompanyName,
		s.config.App.BaseURL,
		data.UserName,
		data.UserEmail,
	)

	htmlContent, err := s.renderTemplate(orderConfirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	email := &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Order Confirmation - %s", data.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
		Data: map[string]interface{}{
			"order_number": data.OrderNumber,
			"order_total":  data.OrderTotal,
		},
	}

	return s.SendEmail(ctx, email)
}

// sendLogEmail records the email instead of delivering it
func (s *EmailService) sendLogEmail(email *Email) error {
	s.logger.WithFields(logrus.Fields{
		"to":      email.To,
		"subject": email.Subject,
		"type":    email.Type,
		"bytes":   len(email.HTMLContent),
	}).Info("📧 Email logged (log provider)")
	return nil
}

// loadTemplates loads templates from the template directory, falling back to
// the built-in ones
func (s *EmailService) loadTemplates() {
	templateDir := s.config.External.Email.TemplateDir
	if templateDir == "" {
		templateDir = "./templates/emails"
	}

	for _, name := range []string{orderConfirmationTemplate} {
		templatePath := filepath.Join(templateDir, name+".html")
		tmpl, err := template.ParseFiles(templatePath)
		if err != nil {
			s.logger.WithError(err).WithField("template", name).Debug("Using built-in email template")
			s.templates[name] = template.Must(template.New(name).Parse(fallbackOrderConfirmation))
			continue
		}
		s.templates[name] = tmpl
	}
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

const fallbackOrderConfirmation = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}} - Order {{.OrderNumber}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #029FAE;">Thank you for your order!</h1>
        <p>Order <strong>{{.OrderNumber}}</strong> placed on {{.OrderDate}}.</p>
        <table style="width: 100%; border-collapse: collapse;">
            {{range .Items}}
            <tr>
                <td style="padding: 8px 0;">{{.Title}} &times; {{.Quantity}}</td>
                <td style="padding: 8px 0; text-align: right;">${{printf "%.2f" .Total}}</td>
            </tr>
            {{end}}
            <tr>
                <td style="padding: 8px 0;">Shipping</td>
                <td style="padding: 8px 0; text-align: right;">Free</td>
            </tr>
            <tr>
                <td style="padding: 8px 0;"><strong>Total</strong></td>
                <td style="padding: 8px 0; text-align: right;"><strong>${{printf "%.2f" .OrderTotal}}</strong></td>
            </tr>
        </table>
        <h3>Delivery address</h3>
        <p>{{.ShippingAddress.Street}}, {{.ShippingAddress.Area}}<br>
           {{.ShippingAddress.City}}, {{.ShippingAddress.State}}, {{.ShippingAddress.Country}}</p>
        <p>Payment method: {{.PaymentMethod}}</p>
        {{if .EstimatedDelivery}}<p>Estimated delivery: {{.EstimatedDelivery}}</p>{{end}}
        <p><a href="{{.OrderURL}}">View your order</a></p>
        <hr>
        <p style="font-size: 12px; color: #666;">
            &copy; {{.Year}} {{.SiteName}}. All rights reserved.
        </p>
    </div>
</body>
</html>`
