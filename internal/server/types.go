package server

import (
	"github.com/osa911/portfolio-api/internal/repository"
	"github.com/osa911/portfolio-api/internal/service"
	"github.com/osa911/portfolio-api/internal/sheets"
	"github.com/osa911/portfolio-api/internal/telemetry"
)

// Dependencies holds everything the HTTP layer is built from
type Dependencies struct {
	Store       repository.Store
	Submissions *service.SubmissionService
	Sheets      *sheets.Client
	// Sentry may be nil
	Sentry *telemetry.SentryService
}
