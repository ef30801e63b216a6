package server

import (
	"context"
	"fmt"
	"time"

	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/events"
	"github.com/osa911/portfolio-api/internal/logging"
	"github.com/osa911/portfolio-api/internal/repository"
	"github.com/osa911/portfolio-api/internal/service"
	"github.com/osa911/portfolio-api/internal/sheets"
	"github.com/osa911/portfolio-api/internal/telemetry"
)

// OpenStore opens the configured record store, migrating PostgreSQL when
// DB_AUTO_MIGRATE is set.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	logger := logging.GetGlobalLogger()

	switch cfg.StoreDriver {
	case config.StorePostgres:
		store, err := repository.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.DBAutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				store.Close()
				return nil, err
			}
			logger.Info("Database migrations applied")
		}
		logger.Info("Using PostgreSQL record store")
		return store, nil
	case config.StoreMemory:
		logger.Warn("Using in-memory record store, records are lost on restart")
		return repository.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Bootstrap wires the store, the optional integrations and the submission
// service. The returned cleanup releases them in reverse order.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	logger := logging.GetGlobalLogger()

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Error("Failed to shut down tracer: %v", err)
		}
	})

	sentryService := telemetry.NewSentryService(cfg.Sentry, cfg.Environment)
	closers = append(closers, func() { sentryService.Flush(2 * time.Second) })

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close store: %v", err)
		}
	})

	sheetsClient, err := sheets.New(ctx, cfg.Sheets)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	logger.Info("Google Sheets integration mode: %s", sheetsClient.Mode())

	opts := []service.Option{
		service.WithSink(sheetsClient),
		service.WithWhatsApp(cfg.WhatsApp),
		service.WithErrorReporter(sentryService),
		service.WithSideEffectTimeout(cfg.Sheets.Timeout),
	}

	if telegram := service.NewTelegramService(cfg.Telegram); telegram.Enabled() {
		opts = append(opts, service.WithNotifier(telegram))
	}

	if recaptcha := service.NewRecaptchaService(cfg.Recaptcha); recaptcha.Enabled() {
		opts = append(opts, service.WithSpamGuard(recaptcha))
	}

	if cfg.RabbitMQ.URL != "" {
		publisher, err := events.DialRabbitMQ(cfg.RabbitMQ)
		if err != nil {
			// Events are best-effort, like the sheet
			logger.Error("RabbitMQ unavailable, submission events disabled: %v", err)
		} else {
			opts = append(opts, service.WithPublisher(publisher))
			closers = append(closers, func() { publisher.Close() })
		}
	}

	submissions := service.NewSubmissionService(store, opts...)
	// Runs first on cleanup, while the notifier and publisher are still open
	closers = append(closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Sheets.Timeout)
		defer cancel()
		if err := submissions.Drain(ctx); err != nil {
			logger.Warn("Gave up waiting for submission side effects: %v", err)
		}
	})

	return &Dependencies{
		Store:       store,
		Submissions: submissions,
		Sheets:      sheetsClient,
		Sentry:      sentryService,
	}, cleanup, nil
}
