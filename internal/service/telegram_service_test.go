package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/models"
)

func TestTelegramService_NotifyContact(t *testing.T) {
	var got telegramMessage
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	s := NewTelegramService(config.TelegramConfig{BotToken: "123:abc", ChatID: "-100"})
	s.apiBase = srv.URL

	err := s.NotifyContact(context.Background(), models.Contact{
		Name:               "<script>",
		Email:              "a@x.com",
		ProjectDescription: "Tom & Jerry",
		Service:            models.StringPtr("ui-ux"),
		Budget:             models.StringPtr("custom"),
		CustomBudget:       models.StringPtr("$500"),
	})
	if err != nil {
		t.Fatalf("NotifyContact() error = %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if got.ChatID != "-100" || got.ParseMode != "HTML" {
		t.Errorf("unexpected payload %+v", got)
	}
	for _, want := range []string{"&lt;script&gt;", "Tom &amp; Jerry", "UI/UX Design", "Custom Budget: $500"} {
		if !strings.Contains(got.Text, want) {
			t.Errorf("text missing %q:\n%s", want, got.Text)
		}
	}
}

func TestTelegramService_Errors(t *testing.T) {
	s := NewTelegramService(config.TelegramConfig{})
	if s.Enabled() {
		t.Fatal("service without token must be disabled")
	}
	if err := s.NotifyServiceInquiry(context.Background(), models.ServiceInquiry{}); err == nil {
		t.Error("expected error when not configured")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s = NewTelegramService(config.TelegramConfig{BotToken: "t", ChatID: "c"})
	s.apiBase = srv.URL
	err := s.NotifyServiceInquiry(context.Background(), models.ServiceInquiry{Name: "B", Service: "seo"})
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status error, got %v", err)
	}
}
