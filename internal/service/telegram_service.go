package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/models"
	"github.com/osa911/portfolio-api/internal/whatsapp"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramService handles sending messages to Telegram
type TelegramService struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

// NewTelegramService creates a new Telegram service
func NewTelegramService(cfg config.TelegramConfig) *TelegramService {
	return &TelegramService{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		apiBase:  telegramAPIBase,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether both the bot token and chat id are set.
func (s *TelegramService) Enabled() bool {
	return s.botToken != "" && s.chatID != ""
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// NotifyContact sends a new contact to the team chat.
func (s *TelegramService) NotifyContact(ctx context.Context, c models.Contact) error {
	text := fmt.Sprintf(
		"🆕 <b>New Contact Form Submission</b>\n\n"+
			"<b>Name:</b> %s\n"+
			"<b>Email:</b> %s\n"+
			"<b>Service:</b> %s\n"+
			"<b>Country:</b> %s\n"+
			"<b>Budget:</b> %s\n"+
			"<b>Timeline:</b> %s\n"+
			"<b>Project:</b>\n%s",
		escapeHTML(c.Name),
		escapeHTML(c.Email),
		escapeHTML(whatsapp.ServiceDisplayName(models.StringValue(c.Service))),
		escapeHTML(models.StringValue(c.Country)),
		escapeHTML(whatsapp.BudgetDisplay(models.StringValue(c.Budget), models.StringValue(c.CustomBudget))),
		escapeHTML(models.StringValue(c.Timeline)),
		escapeHTML(c.ProjectDescription),
	)
	return s.send(ctx, text)
}

// NotifyServiceInquiry sends a new service inquiry to the team chat.
func (s *TelegramService) NotifyServiceInquiry(ctx context.Context, q models.ServiceInquiry) error {
	text := fmt.Sprintf(
		"🆕 <b>New Service Inquiry</b>\n\n"+
			"<b>Name:</b> %s\n"+
			"<b>Email:</b> %s\n"+
			"<b>Service:</b> %s\n"+
			"<b>Message:</b>\n%s",
		escapeHTML(q.Name),
		escapeHTML(q.Email),
		escapeHTML(whatsapp.ServiceDisplayName(q.Service)),
		escapeHTML(models.StringValue(q.Message)),
	)
	return s.send(ctx, text)
}

func (s *TelegramService) send(ctx context.Context, text string) error {
	if !s.Enabled() {
		return fmt.Errorf("telegram bot token or chat ID not configured")
	}

	payload := telegramMessage{
		ChatID:    s.chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeHTML escapes HTML special characters for Telegram
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
