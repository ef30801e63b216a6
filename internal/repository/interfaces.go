package repository

import (
	"context"

	"github.com/osa911/portfolio-api/internal/models"
)

// ContactRepository defines the persistence operations for contacts
type ContactRepository interface {
	// CreateContact assigns an id and creation time, stores the contact and returns a copy
	CreateContact(ctx context.Context, contact models.NewContact) (models.Contact, error)
	// ListContacts returns all contacts, newest first
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

// ServiceInquiryRepository defines the persistence operations for service inquiries
type ServiceInquiryRepository interface {
	// CreateServiceInquiry assigns an id and creation time, stores the inquiry and returns a copy
	CreateServiceInquiry(ctx context.Context, inquiry models.NewServiceInquiry) (models.ServiceInquiry, error)
	// ListServiceInquiries returns all inquiries, newest first
	ListServiceInquiries(ctx context.Context) ([]models.ServiceInquiry, error)
}

// UserRepository defines the persistence operations for operator accounts
type UserRepository interface {
	// GetUser returns a user by ID or ErrNotFound
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetUserByUsername returns a user by username or ErrNotFound
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// CreateUser stores a new user; a taken username yields ErrAlreadyExists
	CreateUser(ctx context.Context, user models.NewUser) (*models.User, error)
}

// Store is the full record store used by the application.
type Store interface {
	ContactRepository
	ServiceInquiryRepository
	UserRepository
	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error
	// Close releases backend resources
	Close() error
}
