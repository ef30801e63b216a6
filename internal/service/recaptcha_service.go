package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osa911/portfolio-api/internal/config"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaService handles reCAPTCHA verification
type RecaptchaService struct {
	secretKey string
	minScore  float64
	verifyURL string
	client    *http.Client
}

// NewRecaptchaService creates a new reCAPTCHA service
func NewRecaptchaService(cfg config.RecaptchaConfig) *RecaptchaService {
	return &RecaptchaService{
		secretKey: cfg.SecretKey,
		minScore:  cfg.MinScore,
		verifyURL: recaptchaVerifyURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether a secret key is configured.
func (s *RecaptchaService) Enabled() bool {
	return s.secretKey != ""
}

// recaptchaResponse represents the response from Google's reCAPTCHA API
type recaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// VerifyToken verifies a reCAPTCHA token. Every rejection wraps ErrRecaptcha.
func (s *RecaptchaService) VerifyToken(ctx context.Context, token string) error {
	if !s.Enabled() {
		return fmt.Errorf("%w: secret key not configured", ErrRecaptcha)
	}

	if token == "" {
		return fmt.Errorf("%w: token is required", ErrRecaptcha)
	}

	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecaptcha, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecaptcha, err)
	}
	defer resp.Body.Close()

	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", ErrRecaptcha, err)
	}

	if !result.Success {
		return fmt.Errorf("%w: %v", ErrRecaptcha, result.ErrorCodes)
	}

	// Check score (for reCAPTCHA v3)
	if result.Score < s.minScore {
		return fmt.Errorf("%w: score too low: %.2f < %.2f", ErrRecaptcha, result.Score, s.minScore)
	}

	return nil
}
