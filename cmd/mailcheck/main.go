// Command mailcheck verifies the configured email provider by sending a
// test message.
package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func main() {
	to := pflag.String("to", "", "recipient address (required)")
	envFiles := pflag.StringSlice("env-file", nil, "dotenv files to load (default .env)")
	pflag.Parse()

	cfg, err := config.Load(*envFiles...)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg)

	if *to == "" {
		log.Fatal("--to is required")
	}

	emailService := email.NewEmailService(cfg, log)

	// Test connection
	if cfg.External.Email.Provider == "smtp" {
		if err := emailService.TestSMTPConnection(); err != nil {
			log.Fatalf("SMTP failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	testEmail := &email.Email{
		To:          []string{*to},
		Subject:     "Test Email from " + cfg.App.Name,
		HTMLContent: "<h1>Success!</h1><p>Email delivery is working.</p>",
		Type:        email.EmailTypeTest,
	}

	if err := emailService.SendEmail(ctx, testEmail); err != nil {
		log.Fatalf("Send failed: %v", err)
	}

	log.WithField("provider", cfg.External.Email.Provider).Info("✅ Email sent successfully!")
}
