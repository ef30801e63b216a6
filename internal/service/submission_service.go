package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/events"
	"github.com/osa911/portfolio-api/internal/logging"
	"github.com/osa911/portfolio-api/internal/models"
	"github.com/osa911/portfolio-api/internal/repository"
	"github.com/osa911/portfolio-api/internal/sheets"
	"github.com/osa911/portfolio-api/internal/validation"
	"github.com/osa911/portfolio-api/internal/whatsapp"
)

var tracer = otel.Tracer("github.com/osa911/portfolio-api/internal/service")

const defaultSideEffectTimeout = 10 * time.Second

// SubmissionRepository is the part of the store the submission pipeline needs.
type SubmissionRepository interface {
	repository.ContactRepository
	repository.ServiceInquiryRepository
}

// Forwarder mirrors a stored record to the spreadsheet.
type Forwarder interface {
	Forward(ctx context.Context, row sheets.Row) bool
}

// Notifier tells the team about a new record.
type Notifier interface {
	NotifyContact(ctx context.Context, contact models.Contact) error
	NotifyServiceInquiry(ctx context.Context, inquiry models.ServiceInquiry) error
}

// EventPublisher announces stored records to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, event events.SubmissionEvent) error
}

// SpamGuard verifies the client's anti-spam token.
type SpamGuard interface {
	VerifyToken(ctx context.Context, token string) error
}

// ErrorReporter receives request-fatal errors.
type ErrorReporter interface {
	CaptureError(ctx context.Context, op string, err error)
}

// SubmissionResult combines the persistence outcome with the best-effort
// spreadsheet outcome.
type SubmissionResult[T any] struct {
	Success           bool   `json:"success"`
	Data              T      `json:"data"`
	SheetsIntegration bool   `json:"sheetsIntegration"`
	WhatsAppURL       string `json:"whatsappUrl,omitempty"`
}

// SubmissionService validates, persists and mirrors submissions.
type SubmissionService struct {
	repo      SubmissionRepository
	validate  *validator.Validate
	sink      Forwarder
	notifier  Notifier
	publisher EventPublisher
	guard     SpamGuard
	reporter  ErrorReporter
	whatsapp  config.WhatsAppConfig
	logger    *logging.Logger

	// budget for the sink, notifier and publisher of one record
	sideEffectTimeout time.Duration
	// notifications and events still running after a response
	pending sync.WaitGroup
}

// Option configures optional collaborators of a SubmissionService.
type Option func(*SubmissionService)

// WithSink sets the spreadsheet forwarder. Without one, sheetsIntegration is
// always false.
func WithSink(f Forwarder) Option {
	return func(s *SubmissionService) { s.sink = f }
}

func WithNotifier(n Notifier) Option {
	return func(s *SubmissionService) { s.notifier = n }
}

func WithPublisher(p EventPublisher) Option {
	return func(s *SubmissionService) { s.publisher = p }
}

// WithSpamGuard requires a valid recaptchaToken on every submission.
func WithSpamGuard(g SpamGuard) Option {
	return func(s *SubmissionService) { s.guard = g }
}

func WithErrorReporter(r ErrorReporter) Option {
	return func(s *SubmissionService) { s.reporter = r }
}

// WithWhatsApp enables chat deep links for the configured phones.
func WithWhatsApp(cfg config.WhatsAppConfig) Option {
	return func(s *SubmissionService) { s.whatsapp = cfg }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *SubmissionService) { s.logger = l }
}

// WithSideEffectTimeout bounds the post-save work of each record.
func WithSideEffectTimeout(d time.Duration) Option {
	return func(s *SubmissionService) {
		if d > 0 {
			s.sideEffectTimeout = d
		}
	}
}

// NewSubmissionService creates a submission service backed by repo.
func NewSubmissionService(repo SubmissionRepository, opts ...Option) *SubmissionService {
	s := &SubmissionService{
		repo:              repo,
		validate:          validation.New(),
		logger:            logging.GetGlobalLogger(),
		sideEffectTimeout: defaultSideEffectTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitContact validates and stores a contact, then mirrors it to the sheet.
func (s *SubmissionService) SubmitContact(ctx context.Context, in ContactInput) (*SubmissionResult[models.Contact], error) {
	ctx, span := tracer.Start(ctx, "SubmissionService.SubmitContact", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	in = in.normalized()
	if err := s.check(ctx, in, in.RecaptchaToken); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	contact, err := s.repo.CreateContact(ctx, in.record())
	if err != nil {
		s.storageFailure(ctx, span, "create contact", err)
		return nil, err
	}
	span.SetAttributes(attribute.String("contact.id", contact.ID))
	s.logger.Info("Contact %s received from %s", contact.ID, contact.Email)

	forwarded := s.afterPersist(ctx, sheets.RowFromContact(contact),
		func(ctx context.Context) error { return s.notifier.NotifyContact(ctx, contact) },
		events.SubmissionEvent{
			Kind:      events.KindContact,
			ID:        contact.ID,
			Service:   models.StringValue(contact.Service),
			CreatedAt: contact.CreatedAt,
		},
	)
	span.SetAttributes(attribute.Bool("sheets.integration", forwarded))

	return &SubmissionResult[models.Contact]{
		Success:           true,
		Data:              contact,
		SheetsIntegration: forwarded,
		WhatsAppURL:       s.deepLink(s.whatsapp.ContactPhone, whatsapp.ContactMessage(contact)),
	}, nil
}

// SubmitServiceInquiry validates and stores a service inquiry, then mirrors
// it to the sheet.
func (s *SubmissionService) SubmitServiceInquiry(ctx context.Context, in ServiceInquiryInput) (*SubmissionResult[models.ServiceInquiry], error) {
	ctx, span := tracer.Start(ctx, "SubmissionService.SubmitServiceInquiry", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	in = in.normalized()
	if err := s.check(ctx, in, in.RecaptchaToken); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	inquiry, err := s.repo.CreateServiceInquiry(ctx, in.record())
	if err != nil {
		s.storageFailure(ctx, span, "create service inquiry", err)
		return nil, err
	}
	span.SetAttributes(attribute.String("inquiry.id", inquiry.ID))
	s.logger.Info("Service inquiry %s for %s received from %s", inquiry.ID, inquiry.Service, inquiry.Email)

	forwarded := s.afterPersist(ctx, sheets.RowFromInquiry(inquiry),
		func(ctx context.Context) error { return s.notifier.NotifyServiceInquiry(ctx, inquiry) },
		events.SubmissionEvent{
			Kind:      events.KindServiceInquiry,
			ID:        inquiry.ID,
			Service:   inquiry.Service,
			CreatedAt: inquiry.CreatedAt,
		},
	)
	span.SetAttributes(attribute.Bool("sheets.integration", forwarded))

	return &SubmissionResult[models.ServiceInquiry]{
		Success:           true,
		Data:              inquiry,
		SheetsIntegration: forwarded,
		WhatsAppURL:       s.deepLink(s.whatsapp.InquiryPhone, whatsapp.InquiryMessage(inquiry, "")),
	}, nil
}

// ListContacts returns every contact, newest first.
func (s *SubmissionService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		s.report(ctx, "list contacts", err)
		return nil, err
	}
	return contacts, nil
}

// ListServiceInquiries returns every service inquiry, newest first.
func (s *SubmissionService) ListServiceInquiries(ctx context.Context) ([]models.ServiceInquiry, error) {
	inquiries, err := s.repo.ListServiceInquiries(ctx)
	if err != nil {
		s.report(ctx, "list service inquiries", err)
		return nil, err
	}
	return inquiries, nil
}

// check runs struct validation and, when configured, the spam guard.
func (s *SubmissionService) check(ctx context.Context, in interface{}, token string) error {
	if err := s.validate.Struct(in); err != nil {
		violations := validation.FormatValidationError(err)
		if len(violations) == 0 {
			return err
		}
		return &ValidationError{Violations: violations}
	}

	if s.guard == nil {
		return nil
	}
	if err := s.guard.VerifyToken(ctx, token); err != nil {
		s.logger.Warn("Rejected submission: %v", err)
		return &ValidationError{Violations: []validation.FieldViolation{{
			Field:   "recaptchaToken",
			Tag:     "recaptcha",
			Message: "spam check failed",
		}}}
	}
	return nil
}

// afterPersist starts the side effects of a stored record on a context
// detached from client cancellation and bounded by sideEffectTimeout. Only
// the sheet forward is awaited; notifications and events finish in the
// background and are tracked by Drain.
func (s *SubmissionService) afterPersist(ctx context.Context, row sheets.Row, notify func(context.Context) error, event events.SubmissionEvent) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sideEffectTimeout)

	var background sync.WaitGroup

	if s.notifier != nil {
		background.Add(1)
		go func() {
			defer background.Done()
			if err := notify(ctx); err != nil {
				s.logger.Warn("Team notification for %s %s failed: %v", event.Kind, event.ID, err)
			}
		}()
	}

	if s.publisher != nil {
		background.Add(1)
		go func() {
			defer background.Done()
			if err := s.publisher.Publish(ctx, event); err != nil {
				s.logger.Warn("Publishing %s %s failed: %v", event.Kind, event.ID, err)
			}
		}()
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		background.Wait()
		cancel()
	}()

	if s.sink == nil {
		return false
	}
	return s.sink.Forward(ctx, row)
}

// Drain waits until background side effects have finished or ctx is done.
func (s *SubmissionService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SubmissionService) deepLink(phone, text string) string {
	if phone == "" {
		return ""
	}
	return whatsapp.DeepLink(s.whatsapp.BaseURL, phone, text)
}

func (s *SubmissionService) storageFailure(ctx context.Context, span trace.Span, op string, err error) {
	recordSpanError(span, err)
	if clientGone(err) {
		s.logger.Warn("Client went away before %s: %v", op, err)
		return
	}
	s.logger.Error("Failed to %s: %v", op, err)
	s.report(ctx, op, err)
}

// report sends backend failures to error tracking. Requests abandoned by the
// client are not backend failures.
func (s *SubmissionService) report(ctx context.Context, op string, err error) {
	if s.reporter != nil && errors.Is(err, repository.ErrStorage) && !clientGone(err) {
		s.reporter.CaptureError(ctx, op, err)
	}
}

func clientGone(err error) bool {
	return errors.Is(err, context.Canceled)
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
