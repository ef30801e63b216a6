package mapper

import (
	"github.com/osa911/portfolio-api/internal/api/dto/v1/contact"
	"github.com/osa911/portfolio-api/internal/api/sanitization"
	"github.com/osa911/portfolio-api/internal/service"
)

// ContactInputFromRequest converts a sanitized request DTO to service input
func ContactInputFromRequest(req *contact.ContactRequest) service.ContactInput {
	return service.ContactInput{
		Name:               sanitization.SanitizeString(req.Name),
		Email:              sanitization.SanitizeEmail(req.Email),
		ProjectDescription: sanitization.SanitizeText(req.ProjectDescription),
		Service:            sanitization.SanitizeOptional(req.Service, sanitization.SanitizeString),
		Country:            sanitization.SanitizeOptional(req.Country, sanitization.SanitizeString),
		Budget:             sanitization.SanitizeOptional(req.Budget, sanitization.SanitizeString),
		CustomBudget:       sanitization.SanitizeOptional(req.CustomBudget, sanitization.SanitizeString),
		Timeline:           sanitization.SanitizeOptional(req.Timeline, sanitization.SanitizeString),
		RecaptchaToken:     req.RecaptchaToken,
	}
}

// ServiceInquiryInputFromRequest converts a sanitized request DTO to service input
func ServiceInquiryInputFromRequest(req *contact.ServiceInquiryRequest) service.ServiceInquiryInput {
	return service.ServiceInquiryInput{
		Name:           sanitization.SanitizeString(req.Name),
		Email:          sanitization.SanitizeEmail(req.Email),
		Service:        sanitization.SanitizeString(req.Service),
		Message:        sanitization.SanitizeOptional(req.Message, sanitization.SanitizeText),
		RecaptchaToken: req.RecaptchaToken,
	}
}
