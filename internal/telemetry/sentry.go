package telemetry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/logging"
)

// SentryService reports errors to Sentry. A service built without a DSN is a
// no-op.
type SentryService struct {
	initialized bool
}

// NewSentryService initialises the Sentry SDK from cfg.
func NewSentryService(cfg config.SentryConfig, defaultEnvironment string) *SentryService {
	logger := logging.GetGlobalLogger()

	if cfg.DSN == "" {
		logger.Info("SENTRY_DSN not set, Sentry disabled")
		return &SentryService{}
	}

	environment := cfg.Environment
	if environment == "" {
		environment = defaultEnvironment
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      environment,
		AttachStacktrace: true,
	})
	if err != nil {
		logger.Error("Sentry initialization failed: %v", err)
		return &SentryService{}
	}

	logger.Info("Sentry initialized successfully")
	return &SentryService{initialized: true}
}

// Enabled reports whether events are sent.
func (s *SentryService) Enabled() bool {
	return s != nil && s.initialized
}

// CaptureError sends err with the operation and request id as tags.
func (s *SentryService) CaptureError(ctx context.Context, op string, err error) {
	if !s.Enabled() || err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("operation", op)
		if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
			scope.SetTag("request_id", reqID)
		}
		scope.SetLevel(sentry.LevelError)
		hub.CaptureException(err)
	})
}

// RecoverPanic reports a recovered panic value.
func (s *SentryService) RecoverPanic(ctx context.Context, v interface{}) {
	if !s.Enabled() {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.RecoverWithContext(ctx, v)
}

// Flush waits for queued events to be sent.
func (s *SentryService) Flush(timeout time.Duration) bool {
	if !s.Enabled() {
		return true
	}
	return sentry.Flush(timeout)
}
