package models

import "time"

// Contact is a prospective client's project inquiry submitted from the contact form.
type Contact struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	ProjectDescription string    `json:"projectDescription"`
	Service            *string   `json:"service"`
	Country            *string   `json:"country"`
	Budget             *string   `json:"budget"`
	CustomBudget       *string   `json:"customBudget"`
	Timeline           *string   `json:"timeline"`
	CreatedAt          time.Time `json:"createdAt"`
}

// NewContact holds the client-supplied fields of a Contact.
// A nil optional field is stored as null.
type NewContact struct {
	Name               string
	Email              string
	ProjectDescription string
	Service            *string
	Country            *string
	Budget             *string
	CustomBudget       *string
	Timeline           *string
}
