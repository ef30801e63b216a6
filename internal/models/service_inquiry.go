package models

import "time"

// ServiceInquiry is a short inquiry about one named service.
type ServiceInquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Service   string    `json:"service"`
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewServiceInquiry holds the client-supplied fields of a ServiceInquiry.
type NewServiceInquiry struct {
	Name    string
	Email   string
	Service string
	Message *string
}
