package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"vicmar/server/internal/models"
)

const defaultAPIBase = "https://api.telegram.org"

type Service struct {
	logger  *logrus.Logger
	client  *http.Client
	apiBase string

	mu     sync.RWMutex
	config models.TelegramConfig
}

func NewService(logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Service{
		logger:  logger,
		apiBase: defaultAPIBase,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *Service) UpdateConfig(config models.TelegramConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
}

// SetAPIBase points the service at a different Bot API host.
func (s *Service) SetAPIBase(base string) {
	s.apiBase = strings.TrimRight(base, "/")
}

func (s *Service) currentConfig() models.TelegramConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SendMessage sends an HTML message to the configured Telegram chat. It does
// nothing when notifications are disabled.
func (s *Service) SendMessage(ctx context.Context, message string) error {
	config := s.currentConfig()
	if !config.IsEnabled {
		return nil
	}

	if config.BotToken == "" {
		return errors.New("Telegram bot token is not configured")
	}

	if config.ChatID == "" {
		return errors.New("Telegram chat ID is not configured")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, config.BotToken)
	payload := map[string]interface{}{
		"chat_id":    config.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build Telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		case http.StatusNotFound:
			return errors.New("bot not found - please check your token from @BotFather")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// FormatInquiry renders the chat message announcing a new inquiry.
func FormatInquiry(inquiry models.Inquiry) string {
	var b strings.Builder
	b.WriteString("<b>New Inquiry!</b>\n\n")
	fmt.Fprintf(&b, "👤 %s\n", html.EscapeString(inquiry.Name))
	fmt.Fprintf(&b, "📧 %s\n", html.EscapeString(inquiry.Email))
	if inquiry.Phone != "" {
		fmt.Fprintf(&b, "📞 %s\n", html.EscapeString(inquiry.Phone))
	}
	if inquiry.InquiryType != "" {
		fmt.Fprintf(&b, "🏷️ %s\n", html.EscapeString(inquiry.InquiryType))
	}
	if inquiry.PropertyTitle != "" {
		fmt.Fprintf(&b, "🏠 %s\n", html.EscapeString(inquiry.PropertyTitle))
	}
	fmt.Fprintf(&b, "\n%s", html.EscapeString(inquiry.Message))
	return b.String()
}

// NotifyNewInquiry sends a notification about a submitted inquiry
func (s *Service) NotifyNewInquiry(ctx context.Context, inquiry models.Inquiry) error {
	if err := s.SendMessage(ctx, FormatInquiry(inquiry)); err != nil {
		return fmt.Errorf("failed to notify inquiry %s: %w", inquiry.ID, err)
	}
	s.logger.WithField("inquiry_id", inquiry.ID).Debug("Sent inquiry notification")
	return nil
}

// Handler adapts NotifyNewInquiry to a queue subscriber.
func (s *Service) Handler() func(models.Inquiry) error {
	return func(inquiry models.Inquiry) error {
		return s.NotifyNewInquiry(context.Background(), inquiry)
	}
}
