package service

import (
	"strings"

	"github.com/osa911/portfolio-api/internal/models"
)

// ContactInput is an unvalidated contact-form submission.
type ContactInput struct {
	Name               string  `json:"name" validate:"notblank,max=100"`
	Email              string  `json:"email" validate:"required,email,max=254"`
	ProjectDescription string  `json:"projectDescription" validate:"notblank,max=5000"`
	Service            *string `json:"service" validate:"omitempty,max=100"`
	Country            *string `json:"country" validate:"omitempty,max=100"`
	Budget             *string `json:"budget" validate:"omitempty,max=100"`
	CustomBudget       *string `json:"customBudget" validate:"omitempty,max=100"`
	Timeline           *string `json:"timeline" validate:"omitempty,max=100"`
	RecaptchaToken     string  `json:"recaptchaToken"`
}

// ServiceInquiryInput is an unvalidated service inquiry.
type ServiceInquiryInput struct {
	Name           string  `json:"name" validate:"notblank,max=100"`
	Email          string  `json:"email" validate:"required,email,max=254"`
	Service        string  `json:"service" validate:"notblank,max=100"`
	Message        *string `json:"message" validate:"omitempty,max=5000"`
	RecaptchaToken string  `json:"recaptchaToken"`
}

// normalized trims every field and turns blank optional fields into nil.
func (in ContactInput) normalized() ContactInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.ProjectDescription = strings.TrimSpace(in.ProjectDescription)
	in.Service = trimOptional(in.Service)
	in.Country = trimOptional(in.Country)
	in.Budget = trimOptional(in.Budget)
	in.CustomBudget = trimOptional(in.CustomBudget)
	in.Timeline = trimOptional(in.Timeline)
	in.RecaptchaToken = strings.TrimSpace(in.RecaptchaToken)
	return in
}

func (in ContactInput) record() models.NewContact {
	return models.NewContact{
		Name:               in.Name,
		Email:              in.Email,
		ProjectDescription: in.ProjectDescription,
		Service:            in.Service,
		Country:            in.Country,
		Budget:             in.Budget,
		CustomBudget:       in.CustomBudget,
		Timeline:           in.Timeline,
	}
}

func (in ServiceInquiryInput) normalized() ServiceInquiryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Service = strings.TrimSpace(in.Service)
	in.Message = trimOptional(in.Message)
	in.RecaptchaToken = strings.TrimSpace(in.RecaptchaToken)
	return in
}

func (in ServiceInquiryInput) record() models.NewServiceInquiry {
	return models.NewServiceInquiry{
		Name:    in.Name,
		Email:   in.Email,
		Service: in.Service,
		Message: in.Message,
	}
}

func trimOptional(p *string) *string {
	if p == nil {
		return nil
	}
	return models.StringPtr(strings.TrimSpace(*p))
}
