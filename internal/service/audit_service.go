package service

import (
	"context"
	"time"

	"github.com/osa911/portfolio-api/internal/logging"
)

// AuditEventType represents the type of audit event
type AuditEventType string

const (
	AuditEventContactCreated   AuditEventType = "CONTACT_CREATED"
	AuditEventInquiryCreated   AuditEventType = "SERVICE_INQUIRY_CREATED"
	AuditEventSubmissionDenied AuditEventType = "SUBMISSION_DENIED"
	AuditEventRecordsListed    AuditEventType = "RECORDS_LISTED"
)

// AuditService handles audit logging
type AuditService struct {
	logger *logging.Logger
}

// NewAuditService creates a new audit service
func NewAuditService() *AuditService {
	return &AuditService{logger: logging.GetGlobalLogger()}
}

// LogEvent writes one audit line. recordID may be empty.
func (s *AuditService) LogEvent(ctx context.Context, eventType AuditEventType, recordID, ip string, details map[string]interface{}) {
	s.logger.Info(
		"[AUDIT] %s | Record: %s | IP: %s | At: %s | Details: %v",
		eventType,
		recordID,
		ip,
		time.Now().UTC().Format(time.RFC3339),
		details,
	)
}
