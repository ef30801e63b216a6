package contact

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	ProjectDescription string  `json:"projectDescription"`
	Service            *string `json:"service"`
	Country            *string `json:"country"`
	Budget             *string `json:"budget"`
	CustomBudget       *string `json:"customBudget"`
	Timeline           *string `json:"timeline"`
	RecaptchaToken     string  `json:"recaptchaToken"`
}

// ServiceInquiryRequest represents an inquiry about a single service
type ServiceInquiryRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Service        string  `json:"service"`
	Message        *string `json:"message"`
	RecaptchaToken string  `json:"recaptchaToken"`
}

// SheetsSetupResponse carries the Apps Script for web-hook mode
type SheetsSetupResponse struct {
	ScriptCode   string   `json:"scriptCode"`
	Instructions []string `json:"instructions"`
}
