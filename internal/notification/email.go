package notification

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"restaurant-manager-go/pkg/model"
)

// EmailConfig holds the configuration for email service
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// EmailService sends receipts and daily summaries over SMTP
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// enabled reports whether SMTP is configured.
func (s *EmailService) enabled() bool {
	return s.config.SMTPHost != "" && s.config.FromEmail != ""
}

// SendReceipt emails a paid order's receipt to the given address
func (s *EmailService) SendReceipt(to string, order *model.OrderResponse) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your visit!\r\n\r\nOrder #%s\r\n", order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%d x %-30s %8.2f\r\n", item.Quantity, item.Name,
			float64(item.UnitPriceCents*item.Quantity)/100)
	}
	fmt.Fprintf(&b, "\r\nTotal: %.2f\r\n", float64(order.TotalCents)/100)

	subject := fmt.Sprintf("Your receipt for order #%s", shortNumber(order.OrderNumber))
	return s.send(to, subject, b.String())
}

// SendDailySummary emails the revenue report for one day to an admin
func (s *EmailService) SendDailySummary(to string, rows []model.DailyRevenue) error {
	var b strings.Builder
	b.WriteString("Daily revenue summary\r\n\r\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s  %4d orders  %10.2f\r\n", r.Day, r.Orders, float64(r.RevenueCents)/100)
	}
	return s.send(to, "Daily revenue summary", b.String())
}

// send delivers one plain-text mail, logging instead when SMTP is not
// configured
func (s *EmailService) send(to, subject, body string) error {
	if !s.enabled() {
		log.Printf("[EMAIL] (not configured) to=%s subject=%q", to, subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.config.FromName, s.config.FromEmail, to, subject, body)

	addr := s.config.SMTPHost + ":" + s.config.SMTPPort
	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, []byte(msg)); err != nil {
		log.Printf("[EMAIL] Error sending to %s: %v", to, err)
		return err
	}
	return nil
}
