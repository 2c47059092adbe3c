package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"storefront-backend/pkg/logger"
)

// OrderConfirmationData carries everything the confirmation email needs.
type OrderConfirmationData struct {
	Email       string
	OrderNumber string
	Total       string
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	subject := fmt.Sprintf("Order %s confirmed", data.OrderNumber)
	body := fmt.Sprintf(`Thank you for your order!

Order number: %s
Total: %s THB

We have received your payment and will ship your items shortly.`,
		data.OrderNumber, data.Total)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.Email,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
