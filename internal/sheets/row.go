package sheets

import (
	"time"

	"github.com/osa911/portfolio-api/internal/models"
)

// timestampLayout renders submission times as ISO-8601 UTC with milliseconds.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Header is the column layout shared by every delivery mode.
var Header = []string{
	"Name",
	"Email",
	"Project Description",
	"Service",
	"Country",
	"Budget",
	"Custom Budget",
	"Timeline",
	"Submitted At",
}

// Row is one submission as mirrored to the spreadsheet. Missing optional
// fields are empty strings.
type Row struct {
	Name         string
	Email        string
	Project      string
	Service      string
	Country      string
	Budget       string
	CustomBudget string
	Timeline     string
	SubmittedAt  time.Time
}

// webhookPayload is the JSON body posted to the web app.
type webhookPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Project      string `json:"project"`
	Service      string `json:"service"`
	Country      string `json:"country"`
	Budget       string `json:"budget"`
	CustomBudget string `json:"customBudget"`
	Timeline     string `json:"timeline"`
	SubmittedAt  string `json:"submittedAt"`
}

// RowFromContact maps a stored contact onto the sheet columns.
func RowFromContact(c models.Contact) Row {
	return Row{
		Name:         c.Name,
		Email:        c.Email,
		Project:      c.ProjectDescription,
		Service:      models.StringValue(c.Service),
		Country:      models.StringValue(c.Country),
		Budget:       models.StringValue(c.Budget),
		CustomBudget: models.StringValue(c.CustomBudget),
		Timeline:     models.StringValue(c.Timeline),
		SubmittedAt:  c.CreatedAt,
	}
}

// RowFromInquiry maps a service inquiry onto the sheet columns. The message
// goes in the project column.
func RowFromInquiry(q models.ServiceInquiry) Row {
	return Row{
		Name:        q.Name,
		Email:       q.Email,
		Project:     models.StringValue(q.Message),
		Service:     q.Service,
		SubmittedAt: q.CreatedAt,
	}
}

func (r Row) submittedAt() string {
	t := r.SubmittedAt
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timestampLayout)
}

func (r Row) payload() webhookPayload {
	return webhookPayload{
		Name:         r.Name,
		Email:        r.Email,
		Project:      r.Project,
		Service:      r.Service,
		Country:      r.Country,
		Budget:       r.Budget,
		CustomBudget: r.CustomBudget,
		Timeline:     r.Timeline,
		SubmittedAt:  r.submittedAt(),
	}
}

// values returns the row in Header order.
func (r Row) values() []interface{} {
	return []interface{}{
		r.Name,
		r.Email,
		r.Project,
		r.Service,
		r.Country,
		r.Budget,
		r.CustomBudget,
		r.Timeline,
		r.submittedAt(),
	}
}
