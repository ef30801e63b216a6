// Package whatsapp composes the pre-filled chat message and deep link the
// browser opens after a successful submission.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/osa911/portfolio-api/internal/models"
)

// BudgetCustom marks a budget whose amount is in the customBudget field.
const BudgetCustom = "custom"

var serviceNames = map[string]string{
	// contact form
	"website-dev":       "Website Development",
	"ui-ux":             "UI/UX Design",
	"app-dev":           "Mobile App Development",
	"ai-chatbot":        "AI Chatbot Integration",
	"branding":          "Brand Design",
	"digital-marketing": "Digital Marketing",
	"seo":               "SEO Optimization",
	"wordpress":         "WordPress Development",
	"ecommerce":         "E-commerce Solutions",

	// services section
	"uiux-design":   "UI/UX Design",
	"wordpress-dev": "WordPress Development",
	"social-media":  "Social Media Management",
	"landing-pages": "Landing Pages for Startups",
}

// ServiceDisplayName returns the human name of a service id. Unknown ids are
// returned unchanged.
func ServiceDisplayName(id string) string {
	if name, ok := serviceNames[id]; ok {
		return name
	}
	return id
}

// BudgetDisplay renders the budget line.
func BudgetDisplay(budget, customBudget string) string {
	if budget == BudgetCustom {
		return "Custom Budget: " + customBudget
	}
	return budget
}

// ContactMessage builds the chat text for a contact-form submission.
func ContactMessage(c models.Contact) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi! I'm %s and I'm interested in your services.\n\n", c.Name)
	fmt.Fprintf(&b, "📧 Email: %s\n", c.Email)
	fmt.Fprintf(&b, "🎯 Service: %s\n", ServiceDisplayName(models.StringValue(c.Service)))
	fmt.Fprintf(&b, "🌍 Country: %s\n", models.StringValue(c.Country))
	fmt.Fprintf(&b, "💰 Budget: %s\n", BudgetDisplay(models.StringValue(c.Budget), models.StringValue(c.CustomBudget)))
	fmt.Fprintf(&b, "⏰ Timeline: %s\n\n", models.StringValue(c.Timeline))
	fmt.Fprintf(&b, "📝 Project Description:\n%s\n\n", c.ProjectDescription)
	b.WriteString("Looking forward to discussing this project with you!")

	return b.String()
}

// InquiryMessage builds the chat text for a service inquiry. An empty
// serviceTitle falls back to the display name of the inquiry's service.
func InquiryMessage(q models.ServiceInquiry, serviceTitle string) string {
	if serviceTitle == "" {
		serviceTitle = ServiceDisplayName(q.Service)
	}
	return fmt.Sprintf("Hi! I'm %s (%s). Interested in your %s service. Message: %s",
		q.Name, q.Email, serviceTitle, models.StringValue(q.Message))
}

// DeepLink returns base/<phone>?text=<text>. Non-digits are stripped from
// phone. It returns "" when phone has no digits.
func DeepLink(base, phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}

	// Spaces as %20, matching encodeURIComponent.
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return strings.TrimRight(base, "/") + "/" + digits + "?text=" + encoded
}
