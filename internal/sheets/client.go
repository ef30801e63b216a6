package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/logging"
)

// Mode is the delivery mechanism selected from configuration.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeWebhook
	ModeAPIKey
	ModeServiceAccount
)

func (m Mode) String() string {
	switch m {
	case ModeWebhook:
		return "webhook"
	case ModeAPIKey:
		return "api-key"
	case ModeServiceAccount:
		return "service-account"
	default:
		return "disabled"
	}
}

// valueInputOption stores values exactly as sent.
const valueInputOption = "RAW"

// Client mirrors submissions to a Google Sheet. The zero configuration
// yields a disabled client whose Forward always returns false.
type Client struct {
	cfg      config.SheetsConfig
	mode     Mode
	http     *http.Client
	values   *gsheets.SpreadsheetsValuesService
	endpoint string
	logger   *logging.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the client used in web-hook mode.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithEndpoint points the Sheets API at a different base URL.
func WithEndpoint(endpoint string) Option {
	return func(cl *Client) { cl.endpoint = endpoint }
}

// WithLogger sets the logger used for delivery results.
func WithLogger(l *logging.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// SelectMode picks the delivery mode: web hook first, then API key, then
// service-account credentials.
func SelectMode(cfg config.SheetsConfig) Mode {
	switch {
	case cfg.WebAppURL != "":
		return ModeWebhook
	case cfg.APIKey != "" && cfg.SpreadsheetID != "":
		return ModeAPIKey
	case cfg.Credentials != "" && cfg.SpreadsheetID != "":
		return ModeServiceAccount
	default:
		return ModeDisabled
	}
}

// New builds a Client for cfg. Invalid service-account credentials are
// reported here rather than on the first submission.
func New(ctx context.Context, cfg config.SheetsConfig, opts ...Option) (*Client, error) {
	if cfg.Range == "" {
		cfg.Range = "Sheet1"
	}

	c := &Client{
		cfg:  cfg,
		mode: SelectMode(cfg),
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logging.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var apiOpts []option.ClientOption
	switch c.mode {
	case ModeAPIKey:
		apiOpts = append(apiOpts, option.WithAPIKey(cfg.APIKey))
	case ModeServiceAccount:
		apiOpts = append(apiOpts,
			option.WithCredentialsJSON([]byte(cfg.Credentials)),
			option.WithScopes(gsheets.SpreadsheetsScope),
		)
	default:
		return c, nil
	}
	if c.endpoint != "" {
		apiOpts = append(apiOpts, option.WithEndpoint(c.endpoint))
	}

	svc, err := gsheets.NewService(ctx, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	c.values = gsheets.NewSpreadsheetsValuesService(svc)

	return c, nil
}

// Mode reports the selected delivery mode.
func (c *Client) Mode() Mode {
	return c.mode
}

// Forward delivers row once and reports whether the sheet accepted it.
// Failures are logged, never returned.
func (c *Client) Forward(ctx context.Context, row Row) bool {
	err := c.Send(ctx, row)
	switch {
	case err == nil:
		c.logger.Info("Submission from %s mirrored to Google Sheets via %s", row.Email, c.mode)
		return true
	case errors.Is(err, ErrNotConfigured):
		c.logger.Warn("Google Sheets not configured, submission from %s stored locally only", row.Email)
		return false
	default:
		c.logger.Error("Google Sheets forward failed, submission from %s stored locally only: %v", row.Email, err)
		return false
	}
}

// Send delivers row once. It returns ErrNotConfigured when disabled and a
// *SinkForwardError on any delivery failure.
func (c *Client) Send(ctx context.Context, row Row) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	switch c.mode {
	case ModeWebhook:
		return c.sendWebhook(ctx, row)
	case ModeAPIKey, ModeServiceAccount:
		return c.appendRow(ctx, row)
	default:
		return ErrNotConfigured
	}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, c.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// webhookResult is the body the Apps Script replies with.
type webhookResult struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) sendWebhook(ctx context.Context, row Row) error {
	jsonData, err := json.Marshal(row.payload())
	if err != nil {
		return &SinkForwardError{Mode: c.mode, Err: fmt.Errorf("failed to marshal row: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WebAppURL, bytes.NewReader(jsonData))
	if err != nil {
		return &SinkForwardError{Mode: c.mode, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &SinkForwardError{Mode: c.mode, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SinkForwardError{Mode: c.mode, Status: resp.StatusCode, Err: errors.New("unexpected status")}
	}

	// The script answers 200 with success=false when appendRow throws.
	var result webhookResult
	if json.Unmarshal(body, &result) == nil && result.Success != nil && !*result.Success {
		return &SinkForwardError{Mode: c.mode, Status: resp.StatusCode, Err: fmt.Errorf("script error: %s", result.Error)}
	}

	return nil
}

func (c *Client) appendRow(ctx context.Context, row Row) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{row.values()}}

	_, err := c.values.Append(c.cfg.SpreadsheetID, c.cfg.Range, vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return c.apiError(err)
	}
	return nil
}

// EnsureHeader writes Header into the first row when it is empty. It reports
// whether the header was written.
func (c *Client) EnsureHeader(ctx context.Context) (bool, error) {
	switch c.mode {
	case ModeAPIKey, ModeServiceAccount:
	case ModeWebhook:
		return false, ErrHeaderUnsupported
	default:
		return false, ErrNotConfigured
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	headerRange := fmt.Sprintf("%s!A1:I1", c.cfg.Range)

	resp, err := c.values.Get(c.cfg.SpreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return false, c.apiError(err)
	}
	if len(resp.Values) > 0 {
		return false, nil
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}

	_, err = c.values.Update(c.cfg.SpreadsheetID, headerRange, &gsheets.ValueRange{Values: [][]interface{}{header}}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return false, c.apiError(err)
	}

	c.logger.Info("Google Sheets header row initialised in %s", headerRange)
	return true, nil
}

func (c *Client) apiError(err error) error {
	fe := &SinkForwardError{Mode: c.mode, Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		fe.Status = gerr.Code
	}
	return fe
}
