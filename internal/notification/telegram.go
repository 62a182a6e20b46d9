// Package notification delivers order events to staff over Telegram
// and email. Both channels are optional: when unconfigured they log
// instead of sending, so the rest of the system never branches on
// notification setup.
package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"restaurant-manager-go/pkg/model"
)

// TelegramConfig holds the configuration for Telegram API
type TelegramConfig struct {
	APIToken string
	ChatID   string
	BaseURL  string
}

// TelegramService sends staff notifications through the Telegram Bot API
type TelegramService struct {
	config      TelegramConfig
	httpClient  *http.Client
	rateLimiter <-chan time.Time
}

// NewTelegramService creates a new telegram service
func NewTelegramService(config TelegramConfig) *TelegramService {
	// Set defaults if not provided
	if config.BaseURL == "" {
		config.BaseURL = "https://api.telegram.org/bot"
	}

	return &TelegramService{
		config:      config,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: time.Tick(500 * time.Millisecond), // Max 2 API calls per second
	}
}

// enabled reports whether a bot token and chat are configured.
func (s *TelegramService) enabled() bool {
	return s.config.APIToken != "" && s.config.ChatID != ""
}

// NotifyOrderPlaced announces a new order to the staff chat
func (s *TelegramService) NotifyOrderPlaced(order *model.OrderResponse) {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 New order for table %d (#%s)\n", order.TableID, shortNumber(order.OrderNumber))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %d× %s\n", item.Quantity, item.Name)
	}
	fmt.Fprintf(&b, "Total: %.2f", float64(order.TotalCents)/100)

	s.send(b.String())
}

// NotifyOrderStuck warns the staff chat about an order sitting in the
// kitchen too long
func (s *TelegramService) NotifyOrderStuck(order model.Order, since time.Duration) {
	msg := fmt.Sprintf("⏰ Order #%s (table %d) has been preparing for %s",
		shortNumber(order.OrderNumber), order.TableID, since.Round(time.Minute))
	s.send(msg)
}

// send posts one message to the configured chat, falling back to the
// log when Telegram is not configured
func (s *TelegramService) send(text string) {
	if !s.enabled() {
		log.Printf("[TELEGRAM] (not configured) %s", strings.ReplaceAll(text, "\n", " | "))
		return
	}

	<-s.rateLimiter // Rate limiting

	payload := map[string]string{
		"chat_id": s.config.ChatID,
		"text":    text,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[TELEGRAM] Error marshaling message: %v", err)
		return
	}

	url := fmt.Sprintf("%s%s/sendMessage", s.config.BaseURL, s.config.APIToken)
	resp, err := s.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		log.Printf("[TELEGRAM] Error sending message: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[TELEGRAM] API returned status %d: %s", resp.StatusCode, string(body))
	}
}

// shortNumber trims a UUID order number down to its first block for
// human-readable messages
func shortNumber(orderNumber string) string {
	if i := strings.IndexByte(orderNumber, '-'); i > 0 {
		return orderNumber[:i]
	}
	return orderNumber
}
